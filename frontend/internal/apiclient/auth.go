package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/studentcollab/collabhub/shared/api"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/utils"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgServerError        = "Server error"
	msgSignupFailed       = "Signup failed"
)

func serverError() error {
	return &internal_errors.ErrorWithStatusCode{Message: msgServerError, StatusCode: http.StatusBadGateway, Kind: internal_errors.ErrAuth}
}

// Login exchanges credentials for an access token. Every failure is an
// ErrAuth: "Invalid credentials" for a rejected login, "Server error" when
// the backend cannot be reached or answers garbage.
func (c *APIClient) Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error) {
	var out api.LoginResponse
	resp, err := c.do(ctx, http.MethodPost, "/login", req)
	if err != nil {
		return out, serverError()
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return out, internal_errors.Auth(msgInvalidCredentials)
	}
	if err := utils.Decode(resp.Body, &out); err != nil {
		return out, serverError()
	}
	return out, nil
}

// Signup registers a new account. A rejected signup reports the backend's
// detail message when it sent one.
func (c *APIClient) Signup(ctx context.Context, req api.SignupRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "/signup", req)
	if err != nil {
		return serverError()
	}
	defer resp.Body.Close()

	if isSuccess(resp.StatusCode) {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	var detail api.ErrorResponse
	if err := json.Unmarshal(bodyBytes, &detail); err == nil && detail.Detail != "" {
		return internal_errors.Auth(detail.Detail)
	}
	return internal_errors.Auth(msgSignupFailed)
}
