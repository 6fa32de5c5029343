package repository_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/api"
	"aptbill/client/internal/config"
	"aptbill/client/internal/log"
	"aptbill/client/internal/models"
	"aptbill/client/internal/repository"
	"aptbill/client/internal/session"
	"aptbill/client/internal/stub"
)

func newAuthEnv(t *testing.T) (*repository.Auth, *session.Store, *api.Client) {
	t.Helper()

	server := stub.NewServer(config.StubConfig{
		JWTSecret:  "test-secret",
		JWTTTL:     time.Hour,
		UploadsDir: t.TempDir(),
	}, log.Discard())

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client := api.New(config.APIConfig{
		BaseURL:        ts.URL + "/api",
		ConnectTimeout: 5 * time.Second,
		RequestTimeout: 5 * time.Second,
	}, store, log.Discard())

	return repository.NewAuth(client, store, log.Discard()), store, client
}

func TestLoginPersistsSession(t *testing.T) {
	auth, store, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := auth.RegisterHouseAdmin(ctx, api.RegisterHouseAdminInput{
		Username:     "warden",
		Password:     "secret1",
		HouseName:    "Old Mill",
		HouseAddress: "1 Mill Lane",
	})
	require.NoError(t, err)

	res, err := auth.Login(ctx, "warden", "secret1")
	require.NoError(t, err)

	// Everything from the response body lands in the store.
	sess, ok := store.Session()
	require.True(t, ok)
	require.Equal(t, res.Token, sess.Token)
	require.Equal(t, res.User.ID, sess.UserID)
	require.Equal(t, "warden", sess.Username)
	require.Equal(t, models.RoleHouseAdmin, sess.Role)
	require.Equal(t, res.User.ApartmentID, sess.ApartmentID)
}

func TestFailedLoginLeavesSessionUnchanged(t *testing.T) {
	auth, store, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "ghost", "nope")
	require.Error(t, err)

	_, ok := store.Session()
	require.False(t, ok)
}

func TestLogoutClearsSessionKeepsPushToken(t *testing.T) {
	auth, store, _ := newAuthEnv(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFCMToken("fcm-xyz"))

	_, err := auth.RegisterHouseAdmin(ctx, api.RegisterHouseAdminInput{
		Username:     "warden",
		Password:     "secret1",
		HouseName:    "Old Mill",
		HouseAddress: "1 Mill Lane",
	})
	require.NoError(t, err)
	_, err = auth.Login(ctx, "warden", "secret1")
	require.NoError(t, err)

	require.NoError(t, auth.Logout())

	_, ok := store.Token()
	require.False(t, ok)
	_, ok = store.Role()
	require.False(t, ok)

	fcm, ok := store.FCMToken()
	require.True(t, ok)
	require.Equal(t, "fcm-xyz", fcm)
}

func TestReloginOverwritesSession(t *testing.T) {
	auth, store, client := newAuthEnv(t)
	ctx := context.Background()

	_, err := auth.RegisterHouseAdmin(ctx, api.RegisterHouseAdminInput{
		Username:     "warden",
		Password:     "secret1",
		HouseName:    "Old Mill",
		HouseAddress: "1 Mill Lane",
	})
	require.NoError(t, err)
	_, err = auth.Login(ctx, "warden", "secret1")
	require.NoError(t, err)

	// A second account logging in on the same device replaces the
	// stored identity wholesale.
	_, err = client.CreateUser(ctx, api.CreateUserInput{
		Username: "tenant9",
		Password: "secret9",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "tenant9", "secret9")
	require.NoError(t, err)

	sess, ok := store.Session()
	require.True(t, ok)
	require.Equal(t, "tenant9", sess.Username)
	require.Equal(t, models.RoleUser, sess.Role)
}
