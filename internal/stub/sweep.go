package stub

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically flips pending debts past their due date to
// overdue. The transition is owned here; clients only ever observe it
// on their next fetch.
type Sweeper struct {
	cron  *cron.Cron
	store *Store
	log   zerolog.Logger
}

func NewSweeper(store *Store, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		cron:  cron.New(cron.WithSeconds()),
		store: store,
		log:   log,
	}
}

func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Sweeper) run() {
	n := s.store.MarkOverdue(time.Now())
	if n > 0 {
		s.log.Info().Int("debts", n).Msg("marked overdue")
	}
}
