package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kinshipapp/kinship/internal/client/session"
	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/models"
)

// getSimpleText, getCode, and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getCode = GetCode
var getMultiline = GetMultiline

// Login prompts for a college email and requests a verification code.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your college email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.RequestVerification(ctx, email); err != nil {
		if errors.Is(err, common.ErrInvalidIdentifier) {
			fmt.Println("That doesn't look like a college email address.")
			return nil
		}
		fmt.Printf("Could not send the code: %s\n", err.Error())
		return err
	}

	fmt.Println("Code sent! Use 'verify' once it arrives.")
	return nil
}

// Verify prompts for the 6-digit code and confirms the pending verification.
func (a *App) Verify(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.PendingIdentifier == "" {
		fmt.Println("No verification in progress. Use 'login' first.")
		return nil
	}

	code, err := getCode(os.Stdout)
	if err != nil {
		return err
	}

	err = a.session.ConfirmVerification(ctx, snap.PendingIdentifier, code)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidCode):
		fmt.Println("The code must be exactly 6 digits.")
		return nil
	case errors.Is(err, common.ErrStorage):
		// Signed in, but the session may not survive a restart.
		fmt.Printf("Signed in, but saving the session failed: %s\n", err.Error())
	default:
		fmt.Printf("Verification failed: %s\n", err.Error())
		return err
	}

	if a.session.Flow() == session.FlowOnboarding {
		fmt.Println("Welcome! Let's set up your profile. Use 'onboard'.")
	} else if u := a.session.Snapshot().User; u != nil {
		fmt.Printf("Welcome back, %s!\n", u.Name)
	}
	return nil
}

// Onboard collects the display name and bio and completes profile setup.
func (a *App) Onboard(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Your name", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getMultiline(a.reader, "A short bio", os.Stdout)
	if err != nil {
		return err
	}

	err = a.session.CompleteOnboarding(ctx, session.Onboarding{Name: name})
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidProfile):
		fmt.Println("A name is required.")
		return nil
	case errors.Is(err, common.ErrStorage):
		fmt.Printf("Profile saved, but persisting it failed: %s\n", err.Error())
	default:
		fmt.Printf("Onboarding failed: %s\n", err.Error())
		return err
	}

	// Push the public profile to the backend too; the session only owns the
	// local identity record.
	if _, err := a.profile.Update(ctx, models.ProfileUpdate{Name: name, Bio: bio}); err != nil {
		fmt.Printf("Could not publish your profile yet: %s\n", err.Error())
	}

	fmt.Println("You're all set. Try 'feed' to start browsing.")
	return nil
}

// Logout signs out and drops all cached data. It always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.cache.Clear()
	fmt.Println("Signed out.")
	return nil
}
