// Package repository maps UI-oriented verbs onto API client calls.
// Every repository here is a pure pass-through except Auth, which also
// persists the session on login and clears it on logout.
package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
	"aptbill/client/internal/session"
)

type Auth struct {
	api   *api.Client
	store *session.Store
	log   zerolog.Logger
}

func NewAuth(client *api.Client, store *session.Store, log zerolog.Logger) *Auth {
	return &Auth{api: client, store: store, log: log}
}

// Login authenticates and, on success, writes the returned identity
// into the session store before handing the result back. The caller
// either sees a fully updated session or an unchanged one.
func (r *Auth) Login(ctx context.Context, username, password string) (api.LoginResult, error) {
	res, err := r.api.Login(ctx, username, password)
	if err != nil {
		return api.LoginResult{}, err
	}

	sess := models.Session{
		Token:       res.Token,
		UserID:      res.User.ID,
		Username:    res.User.Username,
		Role:        res.User.Role,
		ApartmentID: res.User.ApartmentID,
	}
	if err := r.store.SaveSession(sess); err != nil {
		return api.LoginResult{}, fmt.Errorf("persist session: %w", err)
	}

	r.log.Info().Str("username", sess.Username).Str("role", string(sess.Role)).Msg("logged in")
	return res, nil
}

// Logout clears the session fields. A stored push token is left alone.
func (r *Auth) Logout() error {
	return r.store.ClearSession()
}

func (r *Auth) RegisterHouseAdmin(ctx context.Context, in api.RegisterHouseAdminInput) (api.RegisterHouseAdminResult, error) {
	return r.api.RegisterHouseAdmin(ctx, in)
}

func (r *Auth) RegisterPushToken(ctx context.Context, token string) (models.StatusMessage, error) {
	return r.api.RegisterPushToken(ctx, token)
}

func (r *Auth) UnregisterPushToken(ctx context.Context, token string) (models.StatusMessage, error) {
	return r.api.UnregisterPushToken(ctx, token)
}
