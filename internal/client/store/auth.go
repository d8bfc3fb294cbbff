package store

import "github.com/dmitrijs2005/gophblog/internal/client/models"

const (
	msgRegistered = "Successfully registered!"
	msgLoggedIn   = "Successfully logged in!"
)

type AuthState struct {
	User    *models.User
	Loading bool
	Error   string
	Success string

	// Restoring is true until the first session restore attempt finishes.
	Restoring bool

	PendingRegistration *models.PendingRegistration
}

func initialAuth() AuthState {
	return AuthState{Restoring: true}
}

// ReduceAuth returns the auth state after a. Unknown actions return s.
func ReduceAuth(s AuthState, a Action) AuthState {
	switch a.Type {
	case TypeRegister, TypeLogin:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
		case Fulfilled:
			s.Loading = false
			if u, ok := a.Payload.(*models.User); ok {
				s.User = u
			}
			if a.Type == TypeRegister {
				s.Success = msgRegistered
			} else {
				s.Success = msgLoggedIn
			}
		case Rejected:
			s.Loading = false
			s.Error = a.Reason
		}

	case TypeSignOut:
		if a.Phase == Rejected {
			s.Error = a.Reason
		}

	case TypeSetUser:
		s.User, _ = a.Payload.(*models.User)
	case TypeLogout:
		s.User = nil
	case TypeAuthClearError:
		s.Error = ""
	case TypeAuthClearSuccess:
		s.Success = ""
	case TypeSetRestoring:
		s.Restoring, _ = a.Payload.(bool)
	case TypeSetPendingRegistration:
		s.PendingRegistration, _ = a.Payload.(*models.PendingRegistration)
	case TypeClearPendingRegistration:
		s.PendingRegistration = nil
	}
	return s
}
