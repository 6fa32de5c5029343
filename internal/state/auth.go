package state

import (
	"context"
	"sync"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

type AuthRepo interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	Logout() error
}

// SessionReader is the slice of the session store the auth screen
// needs to restore "already logged in" on startup.
type SessionReader interface {
	Session() (models.Session, bool)
}

// AuthState backs the login screen. Logged out is Idle, a finished
// login is Ready, a failed one is Failed; there are no intermediate
// states beyond the in-flight Loading.
type AuthState struct {
	mu      sync.Mutex
	repo    AuthRepo
	current Resource[models.Session]
}

func NewAuth(repo AuthRepo, sessions SessionReader) *AuthState {
	s := &AuthState{repo: repo, current: Idle[models.Session]()}
	if sess, ok := sessions.Session(); ok {
		s.current = Ready(sess)
	}
	return s
}

func (s *AuthState) Current() Resource[models.Session] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *AuthState) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.current = Loading[models.Session]()
	s.mu.Unlock()

	res, err := s.repo.Login(ctx, username, password)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.current = Failed[models.Session](err)
		return err
	}
	s.current = Ready(models.Session{
		Token:       res.Token,
		UserID:      res.User.ID,
		Username:    res.User.Username,
		Role:        res.User.Role,
		ApartmentID: res.User.ApartmentID,
	})
	return nil
}

func (s *AuthState) Logout() error {
	if err := s.repo.Logout(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Idle[models.Session]()
	return nil
}
