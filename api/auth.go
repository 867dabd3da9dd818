package api

import (
	"context"

	"examportal/models"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

func Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var result LoginResponse
	resp, err := request(ctx, "").
		SetBody(creds).
		SetResult(&result).
		Post("/auth/login")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}
