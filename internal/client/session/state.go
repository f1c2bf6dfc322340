package session

import "github.com/uni-jay/ican-portal/internal/client/models"

// Phase is the coarse lifecycle position derived from a State.
type Phase int

const (
	PhaseBootstrapping Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
	PhaseBusy
)

func (p Phase) String() string {
	switch p {
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// State is the client-side view of the authentication session.
//
// IsAuthenticated is true exactly when User is non-nil. An empty Error means
// no error is pending.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string

	// booting marks the initial state until the first transition.
	booting bool
}

func initialState() State {
	return State{IsLoading: true, booting: true}
}

func (s State) Phase() Phase {
	switch {
	case s.IsLoading && s.booting:
		return PhaseBootstrapping
	case s.IsLoading:
		return PhaseBusy
	case s.IsAuthenticated:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}

// clone returns a deep copy of s.
func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}

func authenticated(u models.User) State {
	return State{User: &u, IsAuthenticated: true}
}

func unauthenticated(errMsg string) State {
	return State{Error: errMsg}
}
