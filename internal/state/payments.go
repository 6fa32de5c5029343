package state

import (
	"context"
	"sync"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
	"aptbill/client/internal/validate"
)

type PaymentsRepo interface {
	List(ctx context.Context) ([]models.Payment, error)
	Create(ctx context.Context, in api.CreatePaymentInput) (models.Payment, error)
	SetStatus(ctx context.Context, id string, status models.PaymentStatus, notes *string) (models.StatusMessage, error)
}

// PaymentsState backs both the tenant submission screen and the admin
// approval screen; they render the same list with different controls.
type PaymentsState struct {
	mu       sync.Mutex
	repo     PaymentsRepo
	payments Resource[[]models.Payment]
	notice   string
	busy     bool
}

func NewPayments(repo PaymentsRepo) *PaymentsState {
	return &PaymentsState{repo: repo, payments: Idle[[]models.Payment]()}
}

func (s *PaymentsState) Payments() Resource[[]models.Payment] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments
}

func (s *PaymentsState) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *PaymentsState) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

func (s *PaymentsState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *PaymentsState) Load(ctx context.Context) {
	s.mu.Lock()
	s.payments = Loading[[]models.Payment]()
	s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.payments = Failed[[]models.Payment](err)
		return
	}
	s.payments = Ready(list)
}

// Submit validates the raw amount client-side, then sends the payment
// (with its optional receipt) and re-fetches the list.
func (s *PaymentsState) Submit(ctx context.Context, debtID, rawAmount string, notes *string, receipt *api.Receipt) error {
	amount, err := validate.Amount(rawAmount)
	if err != nil {
		s.setNotice(err.Error())
		return err
	}

	s.setBusy(true)
	_, err = s.repo.Create(ctx, api.CreatePaymentInput{
		DebtID:  debtID,
		Amount:  amount,
		Notes:   notes,
		Receipt: receipt,
	})
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("submit payment", err))
		return err
	}

	s.Load(ctx)
	return nil
}

// Approve and Reject only request the transition; the resulting status
// is whatever the re-fetch says it is.
func (s *PaymentsState) Approve(ctx context.Context, id string, notes *string) error {
	return s.setStatus(ctx, id, models.PaymentStatusApproved, notes)
}

func (s *PaymentsState) Reject(ctx context.Context, id string, notes *string) error {
	return s.setStatus(ctx, id, models.PaymentStatusRejected, notes)
}

func (s *PaymentsState) setStatus(ctx context.Context, id string, status models.PaymentStatus, notes *string) error {
	s.setBusy(true)
	_, err := s.repo.SetStatus(ctx, id, status, notes)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("update payment status", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *PaymentsState) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

func (s *PaymentsState) setBusy(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = b
}
