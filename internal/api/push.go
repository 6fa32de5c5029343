package api

import (
	"context"
	"net/http"

	"aptbill/client/internal/models"
)

type pushTokenRequest struct {
	FCMToken string `json:"fcm_token"`
}

// RegisterPushToken tells the backend where to send notifications for
// the logged-in user.
func (c *Client) RegisterPushToken(ctx context.Context, token string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodPost, "/push-token", nil, pushTokenRequest{FCMToken: token}, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}

func (c *Client) UnregisterPushToken(ctx context.Context, token string) (models.StatusMessage, error) {
	var out models.StatusMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/push-token", nil, pushTokenRequest{FCMToken: token}, &out); err != nil {
		return models.StatusMessage{}, err
	}
	return out, nil
}
