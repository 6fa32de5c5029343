package repository

import (
	"context"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

type Users struct {
	api *api.Client
}

func NewUsers(client *api.Client) *Users {
	return &Users{api: client}
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	return r.api.Users(ctx)
}

func (r *Users) Create(ctx context.Context, in api.CreateUserInput) (models.User, error) {
	return r.api.CreateUser(ctx, in)
}

func (r *Users) Update(ctx context.Context, id string, in api.UpdateUserInput) (models.User, error) {
	return r.api.UpdateUser(ctx, id, in)
}

func (r *Users) Delete(ctx context.Context, id string) (models.StatusMessage, error) {
	return r.api.DeleteUser(ctx, id)
}

func (r *Users) Profile(ctx context.Context) (models.Profile, error) {
	return r.api.Profile(ctx)
}
