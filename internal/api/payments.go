package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"aptbill/client/internal/models"
)

// Receipt is an optional binary attachment for a payment submission.
type Receipt struct {
	Filename string
	Reader   io.Reader
}

type CreatePaymentInput struct {
	DebtID  string
	Amount  float64
	Notes   *string
	Receipt *Receipt
}

func (c *Client) Payments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.doJSON(ctx, http.MethodGet, "/payments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePayment is the one multipart operation on the API: scalar
// fields travel as form values, the receipt as a file part.
func (c *Client) CreatePayment(ctx context.Context, in CreatePaymentInput) (models.Payment, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("debt_id", in.DebtID); err != nil {
		return models.Payment{}, fmt.Errorf("encode form: %w", err)
	}
	if err := w.WriteField("amount", strconv.FormatFloat(in.Amount, 'f', 2, 64)); err != nil {
		return models.Payment{}, fmt.Errorf("encode form: %w", err)
	}
	if in.Notes != nil {
		if err := w.WriteField("notes", *in.Notes); err != nil {
			return models.Payment{}, fmt.Errorf("encode form: %w", err)
		}
	}
	if in.Receipt != nil {
		part, err := w.CreateFormFile("receipt", in.Receipt.Filename)
		if err != nil {
			return models.Payment{}, fmt.Errorf("encode form: %w", err)
		}
		if _, err := io.Copy(part, in.Receipt.Reader); err != nil {
			return models.Payment{}, fmt.Errorf("read receipt: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return models.Payment{}, fmt.Errorf("encode form: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/payments", nil, &buf, w.FormDataContentType())
	if err != nil {
		return models.Payment{}, err
	}

	var out models.Payment
	if err := json.Unmarshal(data, &out); err != nil {
		return models.Payment{}, &DecodeError{Err: err}
	}
	return out, nil
}

type paymentStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
	Notes  *string              `json:"notes"`
}

// SetPaymentStatus requests an approve/reject transition. The status
// lifecycle is server-owned; callers re-fetch to see the result.
func (c *Client) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, notes *string) (models.StatusMessage, error) {
	var out models.StatusMessage
	in := paymentStatusRequest{Status: status, Notes: notes}
	if err := c.doJSON(ctx, http.MethodPut, "/payments/"+id+"/status", nil, in, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}

// ReceiptURL resolves a stored receipt_path to its download URL.
// Uploads are served from the server root, beside the API prefix.
func (c *Client) ReceiptURL(receiptPath string) string {
	root := strings.TrimSuffix(c.baseURL, "/api")
	return root + "/uploads/" + strings.TrimPrefix(receiptPath, "/")
}

// DownloadReceipt fetches the raw receipt bytes.
func (c *Client) DownloadReceipt(ctx context.Context, receiptPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReceiptURL(receiptPath), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpError(resp.StatusCode, data)
	}
	return data, nil
}
