package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// client is the single configured client for the exam backend. Every facade
// call goes through it so the bearer token and 401 handling stay uniform.
var client *resty.Client

// ErrUnauthorized signals that the backend rejected the bearer token. The
// app-wide error handler reacts by tearing down the session, regardless of
// which page made the call.
var ErrUnauthorized = errors.New("backend rejected credentials")

// Error carries the backend's detail message for any other non-2xx response.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string { return e.Detail }

func Init(baseURL string) {
	client = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
}

// BaseURL exposes the backend address for building absolute asset links.
func BaseURL() string {
	return client.BaseURL
}

func request(ctx context.Context, token string) *resty.Request {
	r := client.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// check folds transport errors, 401s and backend error payloads into a single
// error value. The backend reports failures as {"detail": "..."}; anything
// unreadable falls back to a generic message.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.IsError() {
		var payload struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(resp.Body(), &payload)
		if payload.Detail == "" {
			payload.Detail = "Request failed"
		}
		return &Error{StatusCode: resp.StatusCode(), Detail: payload.Detail}
	}
	return nil
}
