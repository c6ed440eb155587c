package rest

import (
	"context"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/Auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var result loginResponse
	if err := decodeResponse(resp, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}
	return result.Token, nil
}

// Register creates a new account. The caller still has to log in.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/Auth/register", "", registerRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
