package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"aptbill/client/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and returns the token plus the user record.
// Persisting the session is the auth repository's job, not ours.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		jsonBody(loginRequest{Username: username, Password: password}), "application/json")
	if err != nil {
		return LoginResult{}, err
	}
	return decodeLogin(data)
}

// decodeLogin tries a strict decode first and falls back to a tolerant
// parse of the raw body. The fallback exists because the strict path
// has been broken in the field by backend responses carrying extra
// fields; when both paths fail the strict error is the one surfaced,
// so the root cause is never masked.
func decodeLogin(data []byte) (LoginResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var res LoginResult
	primaryErr := dec.Decode(&res)
	if primaryErr == nil {
		if res.Token == "" {
			primaryErr = fmt.Errorf("login response missing token")
		} else {
			return res, nil
		}
	}

	loose, err := decodeLoginLoose(data)
	if err != nil {
		return LoginResult{}, &DecodeError{Err: primaryErr}
	}
	return loose, nil
}

func decodeLoginLoose(data []byte) (LoginResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return LoginResult{}, err
	}

	var res LoginResult
	if tok, ok := raw["token"]; ok {
		if err := json.Unmarshal(tok, &res.Token); err != nil {
			return LoginResult{}, err
		}
	}
	if res.Token == "" {
		return LoginResult{}, fmt.Errorf("login response missing token")
	}
	if user, ok := raw["user"]; ok {
		if err := json.Unmarshal(user, &res.User); err != nil {
			return LoginResult{}, err
		}
	}
	return res, nil
}

type RegisterHouseAdminInput struct {
	Username         string  `json:"username"`
	Password         string  `json:"password"`
	HouseName        string  `json:"house_name"`
	HouseAddress     string  `json:"house_address"`
	HouseDescription *string `json:"house_description"`
}

type RegisterHouseAdminResult struct {
	User  models.User  `json:"user"`
	House models.House `json:"house"`
}

// RegisterHouseAdmin creates the first admin of a house together with
// the house itself.
func (c *Client) RegisterHouseAdmin(ctx context.Context, in RegisterHouseAdminInput) (RegisterHouseAdminResult, error) {
	var res RegisterHouseAdminResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register_house_admin", nil, in, &res); err != nil {
		return RegisterHouseAdminResult{}, err
	}
	return res, nil
}

func jsonBody(v any) *bytes.Reader {
	data, _ := json.Marshal(v)
	return bytes.NewReader(data)
}
