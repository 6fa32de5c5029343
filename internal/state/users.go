package state

import (
	"context"
	"slices"
	"sync"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

type UsersRepo interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in api.CreateUserInput) (models.User, error)
	Update(ctx context.Context, id string, in api.UpdateUserInput) (models.User, error)
	Delete(ctx context.Context, id string) (models.StatusMessage, error)
	Profile(ctx context.Context) (models.Profile, error)
}

// UsersState backs the admin user-management screen and the profile
// screen.
type UsersState struct {
	mu      sync.Mutex
	repo    UsersRepo
	users   Resource[[]models.User]
	profile Resource[models.Profile]
	notice  string
	busy    bool
}

func NewUsers(repo UsersRepo) *UsersState {
	return &UsersState{
		repo:    repo,
		users:   Idle[[]models.User](),
		profile: Idle[models.Profile](),
	}
}

func (s *UsersState) Users() Resource[[]models.User] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

func (s *UsersState) Profile() Resource[models.Profile] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *UsersState) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *UsersState) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

func (s *UsersState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *UsersState) Load(ctx context.Context) {
	s.mu.Lock()
	s.users = Loading[[]models.User]()
	s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.users = Failed[[]models.User](err)
		return
	}
	s.users = Ready(list)
}

func (s *UsersState) LoadProfile(ctx context.Context) {
	s.mu.Lock()
	s.profile = Loading[models.Profile]()
	s.mu.Unlock()

	p, err := s.repo.Profile(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.profile = Failed[models.Profile](err)
		return
	}
	s.profile = Ready(p)
}

func (s *UsersState) Create(ctx context.Context, in api.CreateUserInput) error {
	s.setBusy(true)
	_, err := s.repo.Create(ctx, in)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("create user", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *UsersState) Update(ctx context.Context, id string, in api.UpdateUserInput) error {
	s.setBusy(true)
	_, err := s.repo.Update(ctx, id, in)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("update user", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *UsersState) Delete(ctx context.Context, id string) error {
	s.setBusy(true)
	_, err := s.repo.Delete(ctx, id)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.notice = Message("delete user", err)
		return err
	}
	if list, ok := s.users.Value(); ok {
		filtered := slices.DeleteFunc(slices.Clone(list), func(u models.User) bool {
			return u.ID == id
		})
		s.users = Ready(filtered)
	}
	return nil
}

func (s *UsersState) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

func (s *UsersState) setBusy(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = b
}
