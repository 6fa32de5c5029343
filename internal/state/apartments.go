package state

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"aptbill/client/internal/models"
)

type ApartmentsRepo interface {
	List(ctx context.Context) ([]models.Apartment, error)
	Create(ctx context.Context, floorID, apartmentNumber, meterNumber string) (models.Apartment, error)
	Update(ctx context.Context, id, floorID, apartmentNumber, meterNumber string) (models.Apartment, error)
	Delete(ctx context.Context, id string) (models.StatusMessage, error)
	ListFloors(ctx context.Context) ([]models.Floor, error)
	CreateFloor(ctx context.Context, floorNumber int, description *string) (models.Floor, error)
	UpdateFloor(ctx context.Context, id string, floorNumber int, description *string) (models.Floor, error)
	DeleteFloor(ctx context.Context, id string) (models.StatusMessage, error)
}

// ApartmentsState backs the building-structure screen: the apartment
// list plus the floor list it references.
type ApartmentsState struct {
	mu         sync.Mutex
	repo       ApartmentsRepo
	apartments Resource[[]models.Apartment]
	floors     Resource[[]models.Floor]
	notice     string
	busy       bool
}

func NewApartments(repo ApartmentsRepo) *ApartmentsState {
	return &ApartmentsState{
		repo:       repo,
		apartments: Idle[[]models.Apartment](),
		floors:     Idle[[]models.Floor](),
	}
}

func (s *ApartmentsState) Apartments() Resource[[]models.Apartment] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apartments
}

func (s *ApartmentsState) Floors() Resource[[]models.Floor] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floors
}

func (s *ApartmentsState) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *ApartmentsState) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

func (s *ApartmentsState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *ApartmentsState) Load(ctx context.Context) {
	s.mu.Lock()
	s.apartments = Loading[[]models.Apartment]()
	s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.apartments = Failed[[]models.Apartment](err)
		return
	}
	s.apartments = Ready(list)
}

func (s *ApartmentsState) LoadFloors(ctx context.Context) {
	s.mu.Lock()
	s.floors = Loading[[]models.Floor]()
	s.mu.Unlock()

	list, err := s.repo.ListFloors(ctx)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.floors = Failed[[]models.Floor](err)
		return
	}
	s.floors = Ready(list)
}

func (s *ApartmentsState) Create(ctx context.Context, floorID, apartmentNumber, meterNumber string) error {
	s.setBusy(true)
	_, err := s.repo.Create(ctx, floorID, apartmentNumber, meterNumber)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("create apartment", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *ApartmentsState) Update(ctx context.Context, id, floorID, apartmentNumber, meterNumber string) error {
	s.setBusy(true)
	_, err := s.repo.Update(ctx, id, floorID, apartmentNumber, meterNumber)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("update apartment", err))
		return err
	}

	s.Load(ctx)
	return nil
}

func (s *ApartmentsState) Delete(ctx context.Context, id string) error {
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
		s.notice = Message("delete apartment", err)
		return err
	}
	if list, ok := s.apartments.Value(); ok {
		filtered := slices.DeleteFunc(slices.Clone(list), func(a models.Apartment) bool {
			return a.ID == id
		})
		s.apartments = Ready(filtered)
	}
	return nil
}

// CreateFloor parses the raw floor number here so non-numeric input is
// rejected before any API call.
func (s *ApartmentsState) CreateFloor(ctx context.Context, rawFloorNumber string, description *string) error {
	n, err := strconv.Atoi(rawFloorNumber)
	if err != nil {
		s.setNotice("floor number must be a whole number")
		return err
	}

	s.setBusy(true)
	_, err = s.repo.CreateFloor(ctx, n, description)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("create floor", err))
		return err
	}

	s.LoadFloors(ctx)
	return nil
}

func (s *ApartmentsState) UpdateFloor(ctx context.Context, id, rawFloorNumber string, description *string) error {
	n, err := strconv.Atoi(rawFloorNumber)
	if err != nil {
		s.setNotice("floor number must be a whole number")
		return err
	}

	s.setBusy(true)
	_, err = s.repo.UpdateFloor(ctx, id, n, description)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}
	s.setBusy(false)
	if err != nil {
		s.setNotice(Message("update floor", err))
		return err
	}

	s.LoadFloors(ctx)
	return nil
}

func (s *ApartmentsState) DeleteFloor(ctx context.Context, id string) error {
	s.setBusy(true)
	_, err := s.repo.DeleteFloor(ctx, id)
	if ctx.Err() != nil {
		s.setBusy(false)
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.notice = Message("delete floor", err)
		return err
	}
	if list, ok := s.floors.Value(); ok {
		filtered := slices.DeleteFunc(slices.Clone(list), func(f models.Floor) bool {
			return f.ID == id
		})
		s.floors = Ready(filtered)
	}
	return nil
}

func (s *ApartmentsState) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

func (s *ApartmentsState) setBusy(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = b
}
