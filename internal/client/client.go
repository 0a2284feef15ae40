// Package client talks to the accounts API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coastalbeacon/beacon/internal/domain/user"
)

// APIError is a non-2xx reply. Message is the server's human readable text.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

type LoginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. A nil httpClient gets a 10s timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SignUp posts the form and returns the server's confirmation message.
func (c *Client) SignUp(ctx context.Context, req user.SignUpRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}

	if err := c.post(ctx, "/signup", req, &out); err != nil {
		return "", err
	}

	return out.Message, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult

	err := c.post(ctx, "/login", user.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return LoginResult{}, err
	}

	if out.Token == "" {
		return LoginResult{}, errors.New("login response carried no token")
	}

	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Message
			apiErr.Code = e.Code
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
