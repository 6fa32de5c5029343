package api

import (
	"context"
	"net/http"

	"aptbill/client/internal/models"
)

type ApartmentInput struct {
	FloorID         string `json:"floor_id"`
	ApartmentNumber string `json:"apartment_number"`
	MeterNumber     string `json:"meter_number"`
}

func (c *Client) Apartments(ctx context.Context) ([]models.Apartment, error) {
	var out []models.Apartment
	if err := c.doJSON(ctx, http.MethodGet, "/apartments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateApartment(ctx context.Context, in ApartmentInput) (models.Apartment, error) {
	var out models.Apartment
	if err := c.doJSON(ctx, http.MethodPost, "/apartments", nil, in, &out); err != nil {
		return models.Apartment{}, err
	}
	return out, nil
}

func (c *Client) UpdateApartment(ctx context.Context, id string, in ApartmentInput) (models.Apartment, error) {
	var out models.Apartment
	if err := c.doJSON(ctx, http.MethodPut, "/apartments/"+id, nil, in, &out); err != nil {
		return models.Apartment{}, err
	}
	return out, nil
}

func (c *Client) DeleteApartment(ctx context.Context, id string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/apartments/"+id, nil, nil, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}
