package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"aptbill/client/internal/models"
)

type MetricsFilter struct {
	StartDate *string
	EndDate   *string
}

func (c *Client) PaymentMetrics(ctx context.Context, f MetricsFilter) (models.PaymentMetrics, error) {
	q := url.Values{}
	if f.StartDate != nil {
		q.Set("start_date", *f.StartDate)
	}
	if f.EndDate != nil {
		q.Set("end_date", *f.EndDate)
	}

	var out models.PaymentMetrics
	if err := c.doJSON(ctx, http.MethodGet, "/metrics/payments", q, nil, &out); err != nil {
		return models.PaymentMetrics{}, err
	}
	return out, nil
}

type HistoryFilter struct {
	ApartmentID *string
	Limit       int
	Offset      int
}

// PaymentHistory pages through past payments, optionally scoped to one
// apartment. Limit defaults to 50.
func (c *Client) PaymentHistory(ctx context.Context, f HistoryFilter) ([]models.Payment, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := url.Values{}
	if f.ApartmentID != nil {
		q.Set("apartment_id", *f.ApartmentID)
	}
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("offset", strconv.Itoa(f.Offset))

	var out []models.Payment
	if err := c.doJSON(ctx, http.MethodGet, "/metrics/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
