package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kinshipapp/kinship/internal/common"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator with the custom rules registered:
// collegeemail (allow-listed college domain) and otpcode (exactly six
// digits).
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("collegeemail", func(fl validator.FieldLevel) bool {
		return common.IsCollegeEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("otpcode", func(fl validator.FieldLevel) bool {
		return common.IsVerificationCode(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "collegeemail":
		return field + " must be a college email address"
	case "otpcode":
		return field + " must be a 6-digit code"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
