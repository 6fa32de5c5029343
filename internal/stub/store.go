// Package stub is a self-contained in-memory rendition of the billing
// backend. It exists so the client can be developed and integration
// tested without the real service; it holds no state across restarts.
package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"aptbill/client/internal/ids"
	"aptbill/client/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrFloorInUse     = errors.New("floor has apartments")
	ErrApartmentInUse = errors.New("apartment has debts")
	ErrBadTransition  = errors.New("status transition not allowed")
)

// Account is a stored user plus credentials; the embedded User is what
// goes over the wire.
type Account struct {
	models.User
	PasswordHash []byte
}

type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*Account
	houses     map[string]*models.House
	floors     map[string]*models.Floor
	apartments map[string]*models.Apartment
	debts      map[string]*models.Debt
	payments   map[string]*models.Payment
	pushTokens map[string]map[string]bool // user id -> set of fcm tokens
}

func NewStore() *Store {
	return &Store{
		accounts:   make(map[string]*Account),
		houses:     make(map[string]*models.House),
		floors:     make(map[string]*models.Floor),
		apartments: make(map[string]*models.Apartment),
		debts:      make(map[string]*models.Debt),
		payments:   make(map[string]*models.Payment),
		pushTokens: make(map[string]map[string]bool),
	}
}

func (s *Store) CreateAccount(username string, passwordHash []byte, role models.Role, apartmentID, houseID *string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	for _, a := range s.accounts {
		if a.Username == username {
			return models.User{}, ErrUsernameTaken
		}
	}

	acc := &Account{
		User: models.User{
			ID:          ids.New(),
			Username:    username,
			Role:        role,
			ApartmentID: apartmentID,
			HouseID:     houseID,
		},
		PasswordHash: passwordHash,
	}
	s.accounts[acc.ID] = acc
	return acc.User, nil
}

func (s *Store) FindAccountByUsername(username string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) GetAccount(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.User)
	}
	sortByID(out, func(u models.User) string { return u.ID })
	return out
}

func (s *Store) UpdateAccount(id, username string, passwordHash []byte, role models.Role, apartmentID *string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	for _, other := range s.accounts {
		if other.ID != id && other.Username == username {
			return models.User{}, ErrUsernameTaken
		}
	}

	a.Username = username
	a.Role = role
	a.ApartmentID = apartmentID
	if passwordHash != nil {
		a.PasswordHash = passwordHash
	}
	return a.User, nil
}

func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(s.accounts, id)
	delete(s.pushTokens, id)
	return nil
}

func (s *Store) CreateHouse(name, address string, description *string) models.House {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &models.House{
		ID:          ids.New(),
		Name:        name,
		Address:     address,
		Description: description,
	}
	s.houses[h.ID] = h
	return *h
}

func (s *Store) GetHouse(id string) (models.House, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.houses[id]
	if !ok {
		return models.House{}, ErrNotFound
	}
	return *h, nil
}

func (s *Store) CreateFloor(floorNumber int, description *string) models.Floor {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &models.Floor{
		ID:          ids.New(),
		FloorNumber: floorNumber,
		Description: description,
	}
	s.floors[f.ID] = f
	return *f
}

func (s *Store) ListFloors() []models.Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Floor, 0, len(s.floors))
	for _, f := range s.floors {
		out = append(out, *f)
	}
	sortByID(out, func(f models.Floor) string { return f.ID })
	return out
}

func (s *Store) UpdateFloor(id string, floorNumber int, description *string) (models.Floor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.floors[id]
	if !ok {
		return models.Floor{}, ErrNotFound
	}
	f.FloorNumber = floorNumber
	f.Description = description
	return *f, nil
}

func (s *Store) DeleteFloor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.floors[id]; !ok {
		return ErrNotFound
	}
	for _, a := range s.apartments {
		if a.FloorID == id {
			return ErrFloorInUse
		}
	}
	delete(s.floors, id)
	return nil
}

func (s *Store) CreateApartment(floorID, apartmentNumber, meterNumber string) (models.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return models.Apartment{}, ErrNotFound
	}

	n := floor.FloorNumber
	a := &models.Apartment{
		ID:              ids.New(),
		FloorID:         floorID,
		ApartmentNumber: apartmentNumber,
		MeterNumber:     meterNumber,
		FloorNumber:     &n,
	}
	s.apartments[a.ID] = a
	return *a, nil
}

func (s *Store) ListApartments() []models.Apartment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Apartment, 0, len(s.apartments))
	for _, a := range s.apartments {
		out = append(out, *a)
	}
	sortByID(out, func(a models.Apartment) string { return a.ID })
	return out
}

func (s *Store) GetApartment(id string) (models.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apartments[id]
	if !ok {
		return models.Apartment{}, ErrNotFound
	}
	return *a, nil
}

func (s *Store) UpdateApartment(id, floorID, apartmentNumber, meterNumber string) (models.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.apartments[id]
	if !ok {
		return models.Apartment{}, ErrNotFound
	}
	floor, ok := s.floors[floorID]
	if !ok {
		return models.Apartment{}, ErrNotFound
	}

	n := floor.FloorNumber
	a.FloorID = floorID
	a.ApartmentNumber = apartmentNumber
	a.MeterNumber = meterNumber
	a.FloorNumber = &n
	return *a, nil
}

func (s *Store) DeleteApartment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apartments[id]; !ok {
		return ErrNotFound
	}
	for _, d := range s.debts {
		if d.ApartmentID == id {
			return ErrApartmentInUse
		}
	}
	delete(s.apartments, id)
	return nil
}

func (s *Store) CreateDebt(apartmentID string, amount float64, description, dueDate *string) (models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt, ok := s.apartments[apartmentID]
	if !ok {
		return models.Debt{}, ErrNotFound
	}

	d := &models.Debt{
		ID:              ids.New(),
		ApartmentID:     apartmentID,
		Amount:          amount,
		Description:     description,
		DueDate:         dueDate,
		Status:          models.DebtStatusPending,
		CreatedAt:       time.Now().UTC(),
		ApartmentNumber: &apt.ApartmentNumber,
		FloorNumber:     apt.FloorNumber,
	}
	s.debts[d.ID] = d
	return *d, nil
}

func (s *Store) ListDebts() []models.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Debt, 0, len(s.debts))
	for _, d := range s.debts {
		out = append(out, *d)
	}
	sortByID(out, func(d models.Debt) string { return d.ID })
	return out
}

func (s *Store) GetDebt(id string) (models.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.debts[id]
	if !ok {
		return models.Debt{}, ErrNotFound
	}
	return *d, nil
}

func (s *Store) UpdateDebt(id, apartmentID string, amount float64, description, dueDate *string) (models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.debts[id]
	if !ok {
		return models.Debt{}, ErrNotFound
	}
	apt, ok := s.apartments[apartmentID]
	if !ok {
		return models.Debt{}, ErrNotFound
	}

	d.ApartmentID = apartmentID
	d.Amount = amount
	d.Description = description
	d.DueDate = dueDate
	d.ApartmentNumber = &apt.ApartmentNumber
	d.FloorNumber = apt.FloorNumber
	return *d, nil
}

func (s *Store) DeleteDebt(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[id]; !ok {
		return ErrNotFound
	}
	delete(s.debts, id)
	return nil
}

func (s *Store) CreatePayment(debtID string, amount float64, notes, receiptPath *string) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debt, ok := s.debts[debtID]
	if !ok {
		return models.Payment{}, ErrNotFound
	}

	p := &models.Payment{
		ID:              ids.New(),
		DebtID:          debtID,
		Amount:          amount,
		PaymentDate:     time.Now().UTC(),
		ReceiptPath:     receiptPath,
		Status:          models.PaymentStatusPending,
		Notes:           notes,
		DebtDescription: debt.Description,
		ApartmentNumber: debt.ApartmentNumber,
	}
	s.payments[p.ID] = p
	return *p, nil
}

func (s *Store) ListPayments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, *p)
	}
	sortByID(out, func(p models.Payment) string { return p.ID })
	return out
}

// SetPaymentStatus applies an approve/reject decision. Only pending
// payments can transition; approving one also settles its debt.
func (s *Store) SetPaymentStatus(id string, status models.PaymentStatus, notes *string, approverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return ErrBadTransition
	}
	if status != models.PaymentStatusApproved && status != models.PaymentStatusRejected {
		return ErrBadTransition
	}

	now := time.Now().UTC()
	p.Status = status
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	if notes != nil {
		p.Notes = notes
	}

	if status == models.PaymentStatusApproved {
		if debt, ok := s.debts[p.DebtID]; ok {
			debt.Status = models.DebtStatusPaid
		}
	}
	return nil
}

// MarkOverdue flips pending debts past their due date. Runs from the
// cron sweep; the date comparison is calendar-day based.
func (s *Store) MarkOverdue(today time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := today.Format(models.DateOnly)
	n := 0
	for _, d := range s.debts {
		if d.Status != models.DebtStatusPending || d.DueDate == nil {
			continue
		}
		if *d.DueDate < day {
			d.Status = models.DebtStatusOverdue
			n++
		}
	}
	return n
}

// Metrics aggregates payments, optionally restricted to a payment-date
// window (inclusive calendar dates).
func (s *Store) Metrics(startDate, endDate *string) models.PaymentMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m models.PaymentMetrics
	for _, p := range s.payments {
		day := p.PaymentDate.Format(models.DateOnly)
		if startDate != nil && day < *startDate {
			continue
		}
		if endDate != nil && day > *endDate {
			continue
		}

		m.TotalCount++
		m.TotalAmount += p.Amount
		switch p.Status {
		case models.PaymentStatusPending:
			m.PendingCount++
		case models.PaymentStatusApproved:
			m.ApprovedCount++
			m.ApprovedAmount += p.Amount
		case models.PaymentStatusRejected:
			m.RejectedCount++
		}
	}
	return m
}

// History pages payments newest-first, optionally for one apartment.
func (s *Store) History(apartmentID *string, limit, offset int) []models.Payment {
	s.mu.RLock()

	all := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if apartmentID != nil {
			debt, ok := s.debts[p.DebtID]
			if !ok || debt.ApartmentID != *apartmentID {
				continue
			}
		}
		all = append(all, *p)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].PaymentDate.After(all[j].PaymentDate)
	})

	if offset >= len(all) {
		return []models.Payment{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (s *Store) AddPushToken(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.pushTokens[userID]
	if !ok {
		set = make(map[string]bool)
		s.pushTokens[userID] = set
	}
	set[token] = true
}

func (s *Store) RemovePushToken(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.pushTokens[userID]; ok {
		delete(set, token)
	}
}

func (s *Store) PushTokens(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.pushTokens[userID]))
	for t := range s.pushTokens[userID] {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// sortByID keeps list responses in creation order; ksuids sort that
// way lexicographically.
func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
