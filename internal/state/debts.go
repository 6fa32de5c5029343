package state

import (
	"context"
	"slices"
	"sync"

	"aptbill/client/internal/models"
	"aptbill/client/internal/validate"
)

type DebtsRepo interface {
	List(ctx context.Context) ([]models.Debt, error)
	Create(ctx context.Context, apartmentID string, amount float64, description, dueDate *string) (models.Debt, error)
	Update(ctx context.Context, id, apartmentID string, amount float64, description, dueDate *string) (models.Debt, error)
	Delete(ctx context.Context, id string) (models.StatusMessage, error)
}

// DebtsState backs the debt list screen.
type DebtsState struct {
	mu     sync.Mutex
	repo   DebtsRepo
	debts  Resource[[]models.Debt]
	notice string
	busy   bool
}

func NewDebts(repo DebtsRepo) *DebtsState {
	return &DebtsState{repo: repo, debts: Idle[[]models.Debt]()}
}

func (s *DebtsState) Debts() Resource[[]models.Debt] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debts
}

func (s *DebtsState) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *DebtsState) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

// Busy reports whether a mutation is in flight. The UI disables the
// triggering control while this is set; the holder itself does not
// deduplicate re-entrant triggers.
func (s *DebtsState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *DebtsState) Load(ctx context.Context) {
	s.mu.Lock()
	s.debts = Loading[[]models.Debt]()
	s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.debts = Failed[[]models.Debt](err)
		return
	}
	s.debts = Ready(list)
}

// Create validates the raw amount before anything leaves the client;
// a rejected amount never reaches the API. On success the list is
// re-fetched so the new entry appears with its server-assigned fields.
func (s *DebtsState) Create(ctx context.Context, apartmentID, rawAmount string, description, dueDate *string) error {
	amount, err := validate.Amount(rawAmount)
	if err != nil {
		s.setNotice(err.Error())
		return err
	}
	if dueDate != nil {
		if _, err := validate.Date(*dueDate); err != nil {
			s.setNotice(err.Error())
			return err
		}
	}

	s.setBusy(true)
	_, err = s.repo.Create(ctx, apartmentID, amount, description, dueDate)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("create debt", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *DebtsState) Update(ctx context.Context, id, apartmentID, rawAmount string, description, dueDate *string) error {
	amount, err := validate.Amount(rawAmount)
	if err != nil {
		s.setNotice(err.Error())
		return err
	}
	if dueDate != nil {
		if _, err := validate.Date(*dueDate); err != nil {
			s.setNotice(err.Error())
			return err
		}
	}

	s.setBusy(true)
	_, err = s.repo.Update(ctx, id, apartmentID, amount, description, dueDate)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("update debt", err))
		return err
	}

	s.Load(ctx)
	return nil
}

// Delete removes the entry from local state only after the backend
// confirmed; on failure the list stays exactly as it was.
func (s *DebtsState) Delete(ctx context.Context, id string) error {
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
		s.notice = Message("delete debt", err)
		return err
	}
	if list, ok := s.debts.Value(); ok {
		filtered := slices.DeleteFunc(slices.Clone(list), func(d models.Debt) bool {
			return d.ID == id
		})
		s.debts = Ready(filtered)
	}
	return nil
}

func (s *DebtsState) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

func (s *DebtsState) setBusy(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = b
}
