package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/api"
	"aptbill/client/internal/config"
	"aptbill/client/internal/log"
	"aptbill/client/internal/models"
	"aptbill/client/internal/session"
	"aptbill/client/internal/stub"
)

// headerCapture records the Authorization header of every request on
// its way into the stub backend.
type headerCapture struct {
	next http.Handler

	mu       sync.Mutex
	lastAuth string
}

func (h *headerCapture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.lastAuth = r.Header.Get("Authorization")
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func (h *headerCapture) LastAuth() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastAuth
}

type env struct {
	client  *api.Client
	store   *session.Store
	capture *headerCapture
}

func newEnv(t *testing.T) *env {
	t.Helper()

	server := stub.NewServer(config.StubConfig{
		JWTSecret:  "test-secret",
		JWTTTL:     time.Hour,
		UploadsDir: t.TempDir(),
	}, log.Discard())

	capture := &headerCapture{next: server.Handler()}
	ts := httptest.NewServer(capture)
	t.Cleanup(ts.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client := api.New(config.APIConfig{
		BaseURL:        ts.URL + "/api",
		ConnectTimeout: 5 * time.Second,
		RequestTimeout: 5 * time.Second,
	}, store, log.Discard())

	return &env{client: client, store: store, capture: capture}
}

// loginAsAdmin registers a house admin and stores the session, the way
// the auth repository would.
func loginAsAdmin(t *testing.T, e *env) api.LoginResult {
	t.Helper()
	ctx := context.Background()

	_, err := e.client.RegisterHouseAdmin(ctx, api.RegisterHouseAdminInput{
		Username:     "chief",
		Password:     "secret1",
		HouseName:    "Riverside 7",
		HouseAddress: "7 River St",
	})
	require.NoError(t, err)

	res, err := e.client.Login(ctx, "chief", "secret1")
	require.NoError(t, err)

	require.NoError(t, e.store.SaveSession(models.Session{
		Token:       res.Token,
		UserID:      res.User.ID,
		Username:    res.User.Username,
		Role:        res.User.Role,
		ApartmentID: res.User.ApartmentID,
	}))
	return res
}

func TestLoginRoundTrip(t *testing.T) {
	e := newEnv(t)
	res := loginAsAdmin(t, e)

	require.NotEmpty(t, res.Token)
	require.Equal(t, "chief", res.User.Username)
	require.Equal(t, models.RoleHouseAdmin, res.User.Role)

	// The issued token carries a readable expiry.
	exp, err := session.TokenExpiry(res.Token)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))
}

func TestLoginBadCredentials(t *testing.T) {
	e := newEnv(t)

	_, err := e.client.Login(context.Background(), "nobody", "wrong")
	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestBearerHeaderMatchesStoredToken(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)

	_, err := e.client.Floors(context.Background())
	require.NoError(t, err)

	token, ok := e.store.Token()
	require.True(t, ok)
	require.Equal(t, "Bearer "+token, e.capture.LastAuth())
}

func TestMissingTokenSendsUnauthenticated(t *testing.T) {
	e := newEnv(t)

	_, err := e.client.Floors(context.Background())
	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	require.Empty(t, e.capture.LastAuth())
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	ts := httptest.NewServer(http.NotFoundHandler())
	baseURL := ts.URL + "/api"
	ts.Close()

	client := api.New(config.APIConfig{
		BaseURL:        baseURL,
		ConnectTimeout: time.Second,
		RequestTimeout: time.Second,
	}, store, log.Discard())

	_, err = client.Debts(context.Background())
	var netErr *api.NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestCreateDebtEchoesSubmittedFields(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	floor, err := e.client.CreateFloor(ctx, api.FloorInput{FloorNumber: 2})
	require.NoError(t, err)
	apt, err := e.client.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floor.ID,
		ApartmentNumber: "21",
		MeterNumber:     "M-021",
	})
	require.NoError(t, err)

	due := "2026-09-30"
	desc := "september heating"
	created, err := e.client.CreateDebt(ctx, api.DebtInput{
		ApartmentID: apt.ID,
		Amount:      150.25,
		Description: &desc,
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPending, created.Status)

	debts, err := e.client.Debts(ctx)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	require.Equal(t, created.ID, debts[0].ID)
	require.Equal(t, 150.25, debts[0].Amount)
	require.Equal(t, &due, debts[0].DueDate)
	require.Equal(t, apt.ID, debts[0].ApartmentID)
}

func TestCreatePaymentMultipartWithReceipt(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	floor, err := e.client.CreateFloor(ctx, api.FloorInput{FloorNumber: 1})
	require.NoError(t, err)
	apt, err := e.client.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floor.ID,
		ApartmentNumber: "11",
		MeterNumber:     "M-011",
	})
	require.NoError(t, err)
	debt, err := e.client.CreateDebt(ctx, api.DebtInput{ApartmentID: apt.ID, Amount: 80})
	require.NoError(t, err)

	receipt := []byte("fake jpeg bytes")
	notes := "paid at the bank"
	payment, err := e.client.CreatePayment(ctx, api.CreatePaymentInput{
		DebtID: debt.ID,
		Amount: 80,
		Notes:  &notes,
		Receipt: &api.Receipt{
			Filename: "receipt.jpg",
			Reader:   bytes.NewReader(receipt),
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, payment.Status)
	require.NotNil(t, payment.ReceiptPath)

	// The uploaded file is retrievable under /uploads/<receipt_path>.
	got, err := e.client.DownloadReceipt(ctx, *payment.ReceiptPath)
	require.NoError(t, err)
	require.Equal(t, receipt, got)
}

func TestCreatePaymentWithoutReceipt(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	floor, err := e.client.CreateFloor(ctx, api.FloorInput{FloorNumber: 1})
	require.NoError(t, err)
	apt, err := e.client.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floor.ID,
		ApartmentNumber: "12",
		MeterNumber:     "M-012",
	})
	require.NoError(t, err)
	debt, err := e.client.CreateDebt(ctx, api.DebtInput{ApartmentID: apt.ID, Amount: 55.5})
	require.NoError(t, err)

	payment, err := e.client.CreatePayment(ctx, api.CreatePaymentInput{
		DebtID: debt.ID,
		Amount: 55.5,
	})
	require.NoError(t, err)
	require.Nil(t, payment.ReceiptPath)
	require.Nil(t, payment.Notes)
}

func TestPaymentApprovalFlow(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	floor, err := e.client.CreateFloor(ctx, api.FloorInput{FloorNumber: 3})
	require.NoError(t, err)
	apt, err := e.client.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floor.ID,
		ApartmentNumber: "31",
		MeterNumber:     "M-031",
	})
	require.NoError(t, err)
	debt, err := e.client.CreateDebt(ctx, api.DebtInput{ApartmentID: apt.ID, Amount: 200})
	require.NoError(t, err)
	payment, err := e.client.CreatePayment(ctx, api.CreatePaymentInput{DebtID: debt.ID, Amount: 200})
	require.NoError(t, err)

	_, err = e.client.SetPaymentStatus(ctx, payment.ID, models.PaymentStatusApproved, nil)
	require.NoError(t, err)

	// The client never computes transitions; it re-fetches them.
	payments, err := e.client.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, models.PaymentStatusApproved, payments[0].Status)
	require.NotNil(t, payments[0].ApprovedAt)

	debts, err := e.client.Debts(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DebtStatusPaid, debts[0].Status)
}

func TestMetricsAndHistory(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	floor, err := e.client.CreateFloor(ctx, api.FloorInput{FloorNumber: 4})
	require.NoError(t, err)
	apt, err := e.client.CreateApartment(ctx, api.ApartmentInput{
		FloorID:         floor.ID,
		ApartmentNumber: "41",
		MeterNumber:     "M-041",
	})
	require.NoError(t, err)
	debt, err := e.client.CreateDebt(ctx, api.DebtInput{ApartmentID: apt.ID, Amount: 100})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = e.client.CreatePayment(ctx, api.CreatePaymentInput{DebtID: debt.ID, Amount: 25})
		require.NoError(t, err)
	}

	metrics, err := e.client.PaymentMetrics(ctx, api.MetricsFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, metrics.TotalCount)
	require.Equal(t, 3, metrics.PendingCount)
	require.InDelta(t, 75, metrics.TotalAmount, 0.001)

	history, err := e.client.PaymentHistory(ctx, api.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, history, 2)

	rest, err := e.client.PaymentHistory(ctx, api.HistoryFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
}

func TestUserCRUDAndProfile(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	created, err := e.client.CreateUser(ctx, api.CreateUserInput{
		Username: "tenant1",
		Password: "secret1",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	require.Equal(t, "tenant1", created.Username)

	users, err := e.client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2) // admin + tenant

	_, err = e.client.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	users, err = e.client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	profile, err := e.client.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "chief", profile.Username)
	require.NotNil(t, profile.HouseName)
	require.Equal(t, "Riverside 7", *profile.HouseName)
}

func TestPushTokenRegistration(t *testing.T) {
	e := newEnv(t)
	loginAsAdmin(t, e)
	ctx := context.Background()

	msg, err := e.client.RegisterPushToken(ctx, "fcm-device-1")
	require.NoError(t, err)
	require.NotEmpty(t, msg.Message)

	_, err = e.client.UnregisterPushToken(ctx, "fcm-device-1")
	require.NoError(t, err)
}
