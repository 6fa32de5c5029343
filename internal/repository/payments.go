package repository

import (
	"context"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
)

// Payments covers payment submission and approval plus the payment
// metrics endpoints.
type Payments struct {
	api *api.Client
}

func NewPayments(client *api.Client) *Payments {
	return &Payments{api: client}
}

func (r *Payments) List(ctx context.Context) ([]models.Payment, error) {
	return r.api.Payments(ctx)
}

func (r *Payments) Create(ctx context.Context, in api.CreatePaymentInput) (models.Payment, error) {
	return r.api.CreatePayment(ctx, in)
}

func (r *Payments) SetStatus(ctx context.Context, id string, status models.PaymentStatus, notes *string) (models.StatusMessage, error) {
	return r.api.SetPaymentStatus(ctx, id, status, notes)
}

func (r *Payments) Metrics(ctx context.Context, f api.MetricsFilter) (models.PaymentMetrics, error) {
	return r.api.PaymentMetrics(ctx, f)
}

func (r *Payments) History(ctx context.Context, f api.HistoryFilter) ([]models.Payment, error) {
	return r.api.PaymentHistory(ctx, f)
}

func (r *Payments) ReceiptURL(receiptPath string) string {
	return r.api.ReceiptURL(receiptPath)
}

func (r *Payments) DownloadReceipt(ctx context.Context, receiptPath string) ([]byte, error) {
	return r.api.DownloadReceipt(ctx, receiptPath)
}
