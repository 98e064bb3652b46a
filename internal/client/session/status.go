package session

// Status is the authentication state of the process-wide session.
type Status int

const (
	// StatusLoading is the pre-hydration meta-state. No flow decision may be
	// made while the session is loading.
	StatusLoading Status = iota
	StatusUnauthenticated
	// StatusPendingVerification means a code was sent and the session is
	// waiting for the user to confirm it.
	StatusPendingVerification
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusPendingVerification:
		return "pending_verification"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Flow is the projection the navigation layer reads to pick a screen stack.
// It is fully derived from Status and the onboarded flag.
type Flow int

const (
	FlowLoading Flow = iota
	// FlowAuth covers both Unauthenticated and PendingVerification.
	FlowAuth
	FlowOnboarding
	FlowMain
)

func (f Flow) String() string {
	switch f {
	case FlowLoading:
		return "loading"
	case FlowAuth:
		return "auth"
	case FlowOnboarding:
		return "onboarding"
	case FlowMain:
		return "main"
	default:
		return "unknown"
	}
}
