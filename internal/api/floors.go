package api

import (
	"context"
	"net/http"

	"aptbill/client/internal/models"
)

type FloorInput struct {
	FloorNumber int     `json:"floor_number"`
	Description *string `json:"description"`
}

func (c *Client) Floors(ctx context.Context) ([]models.Floor, error) {
	var out []models.Floor
	if err := c.doJSON(ctx, http.MethodGet, "/floors", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFloor(ctx context.Context, in FloorInput) (models.Floor, error) {
	var out models.Floor
	if err := c.doJSON(ctx, http.MethodPost, "/floors", nil, in, &out); err != nil {
		return models.Floor{}, err
	}
	return out, nil
}

func (c *Client) UpdateFloor(ctx context.Context, id string, in FloorInput) (models.Floor, error) {
	var out models.Floor
	if err := c.doJSON(ctx, http.MethodPut, "/floors/"+id, nil, in, &out); err != nil {
		return models.Floor{}, err
	}
	return out, nil
}

func (c *Client) DeleteFloor(ctx context.Context, id string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/floors/"+id, nil, nil, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}
