// Package session owns the process-wide authentication and onboarding state.
//
// The Manager is the only writer of the three durable credential keys and the
// only component allowed to transition the session between states. UI layers
// read the Snapshot/Flow projections and issue commands; they never mutate
// state directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/storage"
	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
)

// Durable credential keys. Owned exclusively by this package.
const (
	KeyToken     = "auth_token"
	KeyUser      = "auth_user"
	KeyOnboarded = "auth_onboarded"
)

// Snapshot is an immutable view of the session for UI consumption.
type Snapshot struct {
	Status            Status
	User              *models.User
	Onboarded         bool
	PendingIdentifier string
}

// Onboarding carries the identity fields collected by the profile-setup
// step. Public profile fields (bio, photos, interests) belong to the profile
// resource and are published through the profile service, not here.
type Onboarding struct {
	Name string
}

// Manager is the session state machine. One instance exists per process,
// constructed at the composition root.
//
// All state mutation happens under mu; external calls happen outside the
// critical section and their resolutions re-validate the current state and
// identifier before applying, so a superseded verification attempt is
// discarded rather than cancelled.
type Manager struct {
	store  storage.Store
	client api.Client
	logger logging.Logger

	mu                sync.Mutex
	status            Status
	user              *models.User
	onboarded         bool
	pendingIdentifier string
	lastRequested     string
}

// NewManager constructs a Manager in the Loading meta-state. Callers must run
// Hydrate before reading Flow.
func NewManager(store storage.Store, client api.Client, logger logging.Logger) *Manager {
	return &Manager{
		store:  store,
		client: client,
		logger: logger.With("component", "session"),
		status: StatusLoading,
	}
}

// Snapshot returns the current session projection.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Status:            m.status,
		User:              m.user,
		Onboarded:         m.onboarded,
		PendingIdentifier: m.pendingIdentifier,
	}
}

// Flow derives the navigation flow from the current state.
func (m *Manager) Flow() Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.status == StatusLoading:
		return FlowLoading
	case m.status != StatusAuthenticated:
		return FlowAuth
	case !m.onboarded:
		return FlowOnboarding
	default:
		return FlowMain
	}
}

// Hydrate restores the session from durable storage. The three keys are read
// concurrently; token and user must both be present for the session to come
// up authenticated. Any storage failure degrades to Unauthenticated with a
// warning log, never an error: a broken keychain must not brick the app.
func (m *Manager) Hydrate(ctx context.Context) {
	keys := []string{KeyToken, KeyUser, KeyOnboarded}
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			values[i], errs[i] = m.store.Get(ctx, key)
		}(i, key)
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		m.logger.Warn(ctx, "failed to load stored auth state", "error", err)
		m.status = StatusUnauthenticated
		return
	}

	token, userJSON, onboarded := values[0], values[1], values[2]
	if len(token) == 0 || len(userJSON) == 0 {
		// Includes the torn-write case: a token without a user record is
		// treated as logged out.
		m.status = StatusUnauthenticated
		return
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		m.logger.Warn(ctx, "stored user record is corrupt", "error", err)
		m.status = StatusUnauthenticated
		return
	}

	m.client.SetToken(string(token))
	m.user = &user
	m.onboarded = string(onboarded) == "true"
	m.status = StatusAuthenticated
}

// RequestVerification validates the identifier and asks the backend to send
// a verification code. Validation failures are raised before any external
// call. If another request for a different identifier is issued while this
// one is in flight, the latest wins and this resolution is discarded.
func (m *Manager) RequestVerification(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if !common.IsCollegeEmail(identifier) {
		return fmt.Errorf("%w: %q is not an allowed college address", common.ErrInvalidIdentifier, identifier)
	}

	m.mu.Lock()
	m.lastRequested = identifier
	m.mu.Unlock()

	err := m.client.SendCode(ctx, identifier)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRequested != identifier {
		m.logger.Debug(ctx, "discarding superseded verification request", "identifier", identifier)
		return nil
	}
	if err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	if m.status == StatusUnauthenticated || m.status == StatusPendingVerification {
		m.status = StatusPendingVerification
		m.pendingIdentifier = identifier
	}
	return nil
}

// ConfirmVerification exchanges the code for a token and user record. The
// code must be exactly six digits; violating that fails before any external
// call. Valid from PendingVerification for the same identifier, or directly
// from Unauthenticated.
//
// On success the token and user record are persisted concurrently and any
// stale onboarded flag is cleared: a fresh verification always re-requires
// onboarding. Partial persistence is surfaced as ErrStorage while the
// in-memory session still transitions, since the backend accepted the code.
func (m *Manager) ConfirmVerification(ctx context.Context, identifier, code string) error {
	identifier = strings.TrimSpace(identifier)
	if !common.IsVerificationCode(code) {
		return fmt.Errorf("%w: code must be exactly %d digits", common.ErrInvalidCode, common.VerificationCodeLength)
	}

	m.mu.Lock()
	if m.status == StatusPendingVerification && m.pendingIdentifier != identifier {
		m.mu.Unlock()
		return fmt.Errorf("%w: verification pending for a different identifier", common.ErrInvalidIdentifier)
	}
	m.mu.Unlock()

	res, err := m.client.ConfirmCode(ctx, identifier, code)
	if err != nil {
		return fmt.Errorf("confirm code: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRequested != "" && m.lastRequested != identifier {
		m.logger.Debug(ctx, "discarding confirmation for superseded identifier", "identifier", identifier)
		return nil
	}

	userJSON, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	// Token and user are one logical transition; the writes go out together
	// but the store gives no atomicity across keys.
	var wg sync.WaitGroup
	writeErrs := make([]error, 3)
	wg.Add(3)
	go func() {
		defer wg.Done()
		writeErrs[0] = m.store.Set(ctx, KeyToken, []byte(res.Token))
	}()
	go func() {
		defer wg.Done()
		writeErrs[1] = m.store.Set(ctx, KeyUser, userJSON)
	}()
	go func() {
		defer wg.Done()
		writeErrs[2] = m.store.Delete(ctx, KeyOnboarded)
	}()
	wg.Wait()

	m.client.SetToken(res.Token)
	user := res.User
	m.user = &user
	m.onboarded = false
	m.status = StatusAuthenticated
	m.pendingIdentifier = ""
	m.lastRequested = ""

	if err := errors.Join(writeErrs...); err != nil {
		m.logger.Warn(ctx, "credential persistence incomplete", "error", err)
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

// CompleteOnboarding merges the supplied profile fields into the user record,
// persists the updated record and the onboarded flag, and activates the
// session. Repeated calls with identical input converge on the same state.
func (m *Manager) CompleteOnboarding(ctx context.Context, ob Onboarding) error {
	name := strings.TrimSpace(ob.Name)
	if name == "" {
		return fmt.Errorf("%w: display name is required", common.ErrInvalidProfile)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusAuthenticated || m.user == nil {
		return common.ErrNoActiveUser
	}

	updated := *m.user
	updated.Name = name

	userJSON, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	var wg sync.WaitGroup
	writeErrs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		writeErrs[0] = m.store.Set(ctx, KeyUser, userJSON)
	}()
	go func() {
		defer wg.Done()
		writeErrs[1] = m.store.Set(ctx, KeyOnboarded, []byte("true"))
	}()
	wg.Wait()

	m.user = &updated
	m.onboarded = true

	if err := errors.Join(writeErrs...); err != nil {
		m.logger.Warn(ctx, "onboarding persistence incomplete", "error", err)
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

// Logout clears the durable keys and resets the session. It is valid from any
// state and never fails: delete errors are logged and the in-memory session
// ends Unauthenticated regardless.
func (m *Manager) Logout(ctx context.Context) {
	for _, key := range []string{KeyToken, KeyUser, KeyOnboarded} {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Warn(ctx, "failed to delete credential key", "key", key, "error", err)
		}
	}

	m.client.SetToken("")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.onboarded = false
	m.pendingIdentifier = ""
	m.lastRequested = ""
	m.status = StatusUnauthenticated
}
