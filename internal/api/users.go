package api

import (
	"context"
	"net/http"

	"aptbill/client/internal/models"
)

type CreateUserInput struct {
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
	ApartmentID *string     `json:"apartment_id"`
}

type UpdateUserInput struct {
	Username    string      `json:"username"`
	Password    *string     `json:"password"`
	Role        models.Role `json:"role"`
	ApartmentID *string     `json:"apartment_id"`
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", nil, in, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+id, nil, in, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/users/"+id, nil, nil, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var out models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}
