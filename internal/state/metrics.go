package state

import (
	"context"
	"sync"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

type MetricsRepo interface {
	Metrics(ctx context.Context, f api.MetricsFilter) (models.PaymentMetrics, error)
	History(ctx context.Context, f api.HistoryFilter) ([]models.Payment, error)
}

// MetricsState backs the dashboard: aggregate payment metrics plus the
// paged payment history.
type MetricsState struct {
	mu      sync.Mutex
	repo    MetricsRepo
	metrics Resource[models.PaymentMetrics]
	history Resource[[]models.Payment]
}

func NewMetrics(repo MetricsRepo) *MetricsState {
	return &MetricsState{
		repo:    repo,
		metrics: Idle[models.PaymentMetrics](),
		history: Idle[[]models.Payment](),
	}
}

func (s *MetricsState) Metrics() Resource[models.PaymentMetrics] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

func (s *MetricsState) History() Resource[[]models.Payment] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

func (s *MetricsState) Load(ctx context.Context, f api.MetricsFilter) {
	s.mu.Lock()
	s.metrics = Loading[models.PaymentMetrics]()
	s.mu.Unlock()

	m, err := s.repo.Metrics(ctx, f)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.metrics = Failed[models.PaymentMetrics](err)
		return
	}
	s.metrics = Ready(m)
}

func (s *MetricsState) LoadHistory(ctx context.Context, f api.HistoryFilter) {
	s.mu.Lock()
	s.history = Loading[[]models.Payment]()
	s.mu.Unlock()

	list, err := s.repo.History(ctx, f)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.history = Failed[[]models.Payment](err)
		return
	}
	s.history = Ready(list)
}
