package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/models"
)

func TestDecodeLoginStrictPath(t *testing.T) {
	body := []byte(`{"token":"tok-1","user":{"id":"u-1","username":"admin","role":"admin","apartment_id":null,"house_id":"h-1"}}`)

	res, err := decodeLogin(body)
	require.NoError(t, err)
	require.Equal(t, "tok-1", res.Token)
	require.Equal(t, "admin", res.User.Username)
	require.Equal(t, models.RoleAdmin, res.User.Role)
	require.Nil(t, res.User.ApartmentID)
}

func TestDecodeLoginFallsBackOnUnknownFields(t *testing.T) {
	// An extra top-level field breaks the strict decoder; the raw-body
	// fallback must produce a result identical to the strict path.
	strict := []byte(`{"token":"tok-1","user":{"id":"u-1","username":"admin","role":"admin","apartment_id":null,"house_id":null}}`)
	loose := []byte(`{"token":"tok-1","server_time":"2026-08-28T10:00:00Z","user":{"id":"u-1","username":"admin","role":"admin","apartment_id":null,"house_id":null}}`)

	want, err := decodeLogin(strict)
	require.NoError(t, err)

	got, err := decodeLogin(loose)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecodeLoginSurfacesOriginalError(t *testing.T) {
	// Neither path can parse this; the error must come from the strict
	// attempt, not be masked by the fallback's.
	_, err := decodeLogin([]byte(`not json at all`))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	require.NotNil(t, decodeErr.Err)
}

func TestDecodeLoginMissingToken(t *testing.T) {
	_, err := decodeLogin([]byte(`{"user":{"id":"u-1","username":"x","role":"user","apartment_id":null,"house_id":null}}`))

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
}
