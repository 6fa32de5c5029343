package api

import (
	"context"
	"net/http"

	"aptbill/client/internal/models"
)

type DebtInput struct {
	ApartmentID string  `json:"apartment_id"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

func (c *Client) Debts(ctx context.Context) ([]models.Debt, error) {
	var out []models.Debt
	if err := c.doJSON(ctx, http.MethodGet, "/debts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDebt(ctx context.Context, in DebtInput) (models.Debt, error) {
	var out models.Debt
	if err := c.doJSON(ctx, http.MethodPost, "/debts", nil, in, &out); err != nil {
		return models.Debt{}, err
	}
	return out, nil
}

func (c *Client) UpdateDebt(ctx context.Context, id string, in DebtInput) (models.Debt, error) {
	var out models.Debt
	if err := c.doJSON(ctx, http.MethodPut, "/debts/"+id, nil, in, &out); err != nil {
		return models.Debt{}, err
	}
	return out, nil
}

func (c *Client) DeleteDebt(ctx context.Context, id string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/debts/"+id, nil, nil, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}
