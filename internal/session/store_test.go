package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/models"
)

func testSession() models.Session {
	apt := "apt-12"
	return models.Session{
		Token:       "tok-abc",
		UserID:      "u-1",
		Username:    "resident",
		Role:        models.RoleUser,
		ApartmentID: &apt,
	}
}

func TestStoreEmptyReadsAreAbsent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	_, ok := store.Token()
	require.False(t, ok)
	_, ok = store.Role()
	require.False(t, ok)
	_, ok = store.Username()
	require.False(t, ok)
	_, ok = store.ApartmentID()
	require.False(t, ok)
	_, ok = store.FCMToken()
	require.False(t, ok)
}

func TestStoreSaveAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.SaveSession(testSession()))

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "tok-abc", token)

	role, ok := store.Role()
	require.True(t, ok)
	require.Equal(t, models.RoleUser, role)

	apt, ok := store.ApartmentID()
	require.True(t, ok)
	require.Equal(t, "apt-12", apt)

	// Survives a process restart.
	reopened, err := Open(path)
	require.NoError(t, err)
	name, ok := reopened.Username()
	require.True(t, ok)
	require.Equal(t, "resident", name)
}

func TestStoreReloginOverwrites(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, store.SaveSession(testSession()))
	require.NoError(t, store.SaveSession(models.Session{
		Token:    "tok-new",
		UserID:   "u-2",
		Username: "manager",
		Role:     models.RoleAdmin,
	}))

	sess, ok := store.Session()
	require.True(t, ok)
	require.Equal(t, "tok-new", sess.Token)
	require.Equal(t, models.RoleAdmin, sess.Role)
	require.Nil(t, sess.ApartmentID)
}

func TestClearSessionKeepsPushToken(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, store.SaveFCMToken("fcm-123"))
	require.NoError(t, store.SaveSession(testSession()))
	require.NoError(t, store.ClearSession())

	_, ok := store.Token()
	require.False(t, ok)
	_, ok = store.Role()
	require.False(t, ok)

	fcm, ok := store.FCMToken()
	require.True(t, ok)
	require.Equal(t, "fcm-123", fcm)
}

func TestPushTokenLifecycleIsIndependent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	// A push token can exist with no active session at all.
	require.NoError(t, store.SaveFCMToken("fcm-a"))
	_, ok := store.Token()
	require.False(t, ok)

	require.NoError(t, store.ClearFCMToken())
	_, ok = store.FCMToken()
	require.False(t, ok)
}

func TestWatchSeesChanges(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := store.Watch(ctx)

	// Initial snapshot arrives without any write.
	snap := <-ch
	require.Nil(t, snap.Session)

	require.NoError(t, store.SaveSession(testSession()))

	select {
	case snap = <-ch:
	case <-time.After(time.Second):
		t.Fatal("no snapshot after save")
	}
	require.NotNil(t, snap.Session)
	require.Equal(t, "tok-abc", snap.Session.Token)
}

func TestWatchCoalescesToLatest(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := store.Watch(ctx)
	<-ch // initial

	sess := testSession()
	require.NoError(t, store.SaveSession(sess))
	sess.Token = "tok-final"
	require.NoError(t, store.SaveSession(sess))

	// Un-consumed intermediate snapshot was replaced by the latest.
	snap := <-ch
	require.NotNil(t, snap.Session)
	require.Equal(t, "tok-final", snap.Session.Token)
}
