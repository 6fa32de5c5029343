package stub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/models"
)

func seedApartment(t *testing.T, s *Store) models.Apartment {
	t.Helper()
	floor := s.CreateFloor(2, nil)
	apt, err := s.CreateApartment(floor.ID, "12", "M-0012")
	require.NoError(t, err)
	return apt
}

func TestCreateDebtDenormalizesApartmentFields(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)

	debt, err := s.CreateDebt(apt.ID, 150, nil, nil)
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPending, debt.Status)
	require.NotNil(t, debt.ApartmentNumber)
	require.Equal(t, "12", *debt.ApartmentNumber)
	require.NotNil(t, debt.FloorNumber)
	require.Equal(t, 2, *debt.FloorNumber)
}

func TestDeleteFloorWithApartmentsRefused(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)

	err := s.DeleteFloor(apt.FloorID)
	require.ErrorIs(t, err, ErrFloorInUse)

	require.NoError(t, s.DeleteApartment(apt.ID))
	require.NoError(t, s.DeleteFloor(apt.FloorID))
}

func TestDeleteApartmentWithDebtsRefused(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)
	_, err := s.CreateDebt(apt.ID, 10, nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, s.DeleteApartment(apt.ID), ErrApartmentInUse)
}

func TestApprovePaymentSettlesDebt(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)
	debt, err := s.CreateDebt(apt.ID, 100, nil, nil)
	require.NoError(t, err)
	payment, err := s.CreatePayment(debt.ID, 100, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetPaymentStatus(payment.ID, models.PaymentStatusApproved, nil, "admin-1"))

	got, err := s.GetDebt(debt.ID)
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPaid, got.Status)

	list := s.ListPayments()
	require.Len(t, list, 1)
	require.Equal(t, models.PaymentStatusApproved, list[0].Status)
	require.NotNil(t, list[0].ApprovedBy)
	require.Equal(t, "admin-1", *list[0].ApprovedBy)
	require.NotNil(t, list[0].ApprovedAt)
}

func TestResolvedPaymentCannotTransitionAgain(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)
	debt, err := s.CreateDebt(apt.ID, 100, nil, nil)
	require.NoError(t, err)
	payment, err := s.CreatePayment(debt.ID, 100, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetPaymentStatus(payment.ID, models.PaymentStatusRejected, nil, "admin-1"))

	err = s.SetPaymentStatus(payment.ID, models.PaymentStatusApproved, nil, "admin-1")
	require.ErrorIs(t, err, ErrBadTransition)

	got, err := s.GetDebt(debt.ID)
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPending, got.Status, "a rejected payment leaves the debt open")
}

func TestSetPaymentStatusRejectsPendingTarget(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)
	debt, err := s.CreateDebt(apt.ID, 100, nil, nil)
	require.NoError(t, err)
	payment, err := s.CreatePayment(debt.ID, 100, nil, nil)
	require.NoError(t, err)

	err = s.SetPaymentStatus(payment.ID, models.PaymentStatusPending, nil, "admin-1")
	require.ErrorIs(t, err, ErrBadTransition)
}

func TestMarkOverdue(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)

	past := "2026-08-01"
	today := "2026-08-28"
	future := "2026-09-15"
	overdue, err := s.CreateDebt(apt.ID, 100, nil, &past)
	require.NoError(t, err)
	dueToday, err := s.CreateDebt(apt.ID, 50, nil, &today)
	require.NoError(t, err)
	notDue, err := s.CreateDebt(apt.ID, 25, nil, &future)
	require.NoError(t, err)
	undated, err := s.CreateDebt(apt.ID, 10, nil, nil)
	require.NoError(t, err)

	now, err := time.Parse(models.DateOnly, today)
	require.NoError(t, err)
	require.Equal(t, 1, s.MarkOverdue(now))

	status := func(id string) models.DebtStatus {
		d, err := s.GetDebt(id)
		require.NoError(t, err)
		return d.Status
	}
	require.Equal(t, models.DebtStatusOverdue, status(overdue.ID))
	require.Equal(t, models.DebtStatusPending, status(dueToday.ID), "due today is not overdue yet")
	require.Equal(t, models.DebtStatusPending, status(notDue.ID))
	require.Equal(t, models.DebtStatusPending, status(undated.ID))

	// A second sweep finds nothing new.
	require.Zero(t, s.MarkOverdue(now))
}

func TestMarkOverdueSkipsPaidDebts(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)

	past := "2026-08-01"
	debt, err := s.CreateDebt(apt.ID, 100, nil, &past)
	require.NoError(t, err)
	payment, err := s.CreatePayment(debt.ID, 100, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetPaymentStatus(payment.ID, models.PaymentStatusApproved, nil, "admin-1"))

	require.Zero(t, s.MarkOverdue(time.Now()))
	got, err := s.GetDebt(debt.ID)
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPaid, got.Status)
}

func TestMetricsAggregation(t *testing.T) {
	s := NewStore()
	apt := seedApartment(t, s)
	debt, err := s.CreateDebt(apt.ID, 500, nil, nil)
	require.NoError(t, err)

	p1, err := s.CreatePayment(debt.ID, 100, nil, nil)
	require.NoError(t, err)
	_, err = s.CreatePayment(debt.ID, 200, nil, nil)
	require.NoError(t, err)
	p3, err := s.CreatePayment(debt.ID, 50, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetPaymentStatus(p1.ID, models.PaymentStatusApproved, nil, "admin-1"))
	require.NoError(t, s.SetPaymentStatus(p3.ID, models.PaymentStatusRejected, nil, "admin-1"))

	m := s.Metrics(nil, nil)
	require.Equal(t, 3, m.TotalCount)
	require.Equal(t, 350.0, m.TotalAmount)
	require.Equal(t, 1, m.PendingCount)
	require.Equal(t, 1, m.ApprovedCount)
	require.Equal(t, 1, m.RejectedCount)
	require.Equal(t, 100.0, m.ApprovedAmount)

	// A window before all payment dates matches nothing.
	end := "2000-01-01"
	empty := s.Metrics(nil, &end)
	require.Zero(t, empty.TotalCount)
	require.Zero(t, empty.TotalAmount)
}

func TestHistoryPagingAndApartmentFilter(t *testing.T) {
	s := NewStore()
	aptA := seedApartment(t, s)
	floorB := s.CreateFloor(3, nil)
	aptB, err := s.CreateApartment(floorB.ID, "31", "M-0031")
	require.NoError(t, err)

	debtA, err := s.CreateDebt(aptA.ID, 100, nil, nil)
	require.NoError(t, err)
	debtB, err := s.CreateDebt(aptB.ID, 100, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.CreatePayment(debtA.ID, float64(10+i), nil, nil)
		require.NoError(t, err)
	}
	_, err = s.CreatePayment(debtB.ID, 99, nil, nil)
	require.NoError(t, err)

	all := s.History(nil, 50, 0)
	require.Len(t, all, 4)

	page := s.History(nil, 2, 0)
	require.Len(t, page, 2)
	rest := s.History(nil, 2, 2)
	require.Len(t, rest, 2)
	require.NotEqual(t, page[0].ID, rest[0].ID)

	onlyB := s.History(&aptB.ID, 50, 0)
	require.Len(t, onlyB, 1)
	require.Equal(t, 99.0, onlyB[0].Amount)

	require.Empty(t, s.History(nil, 50, 10))
}

func TestDuplicateUsernameRejected(t *testing.T) {
	s := NewStore()
	_, err := s.CreateAccount("maria", []byte("hash"), models.RoleUser, nil, nil)
	require.NoError(t, err)
	_, err = s.CreateAccount("maria", []byte("hash"), models.RoleUser, nil, nil)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestPushTokenSet(t *testing.T) {
	s := NewStore()
	s.AddPushToken("u-1", "fcm-a")
	s.AddPushToken("u-1", "fcm-b")
	s.AddPushToken("u-1", "fcm-a")
	require.Equal(t, []string{"fcm-a", "fcm-b"}, s.PushTokens("u-1"))

	s.RemovePushToken("u-1", "fcm-a")
	require.Equal(t, []string{"fcm-b"}, s.PushTokens("u-1"))
}
