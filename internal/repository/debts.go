package repository

import (
	"context"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

type Debts struct {
	api *api.Client
}

func NewDebts(client *api.Client) *Debts {
	return &Debts{api: client}
}

func (r *Debts) List(ctx context.Context) ([]models.Debt, error) {
	return r.api.Debts(ctx)
}

func (r *Debts) Create(ctx context.Context, apartmentID string, amount float64, description, dueDate *string) (models.Debt, error) {
	return r.api.CreateDebt(ctx, api.DebtInput{
		ApartmentID: apartmentID,
		Amount:      amount,
		Description: description,
		DueDate:     dueDate,
	})
}

func (r *Debts) Update(ctx context.Context, id, apartmentID string, amount float64, description, dueDate *string) (models.Debt, error) {
	return r.api.UpdateDebt(ctx, id, api.DebtInput{
		ApartmentID: apartmentID,
		Amount:      amount,
		Description: description,
		DueDate:     dueDate,
	})
}

func (r *Debts) Delete(ctx context.Context, id string) (models.StatusMessage, error) {
	return r.api.DeleteDebt(ctx, id)
}
