// Package pnw is the client for the game's GraphQL API: bank withdrawals and
// the alliance bank record feed.
package pnw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"alliance-bank/config"
	"alliance-bank/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client implements ports.PaymentGateway and ports.BankFeed.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a GraphQL client. A nil httpClient gets a default client
// bounded by cfg.Timeout.
func NewClient(cfg config.PNWConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		log:        log.With().Str("component", "pnw").Logger(),
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// RemoteError is returned when the API answered but rejected the operation.
type RemoteError struct {
	Status   int
	Messages []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("pnw: unexpected status %d", e.Status)
	}
	return "pnw: " + strings.Join(e.Messages, "; ")
}

// do posts one GraphQL document and decodes data into out.
func (c *Client) do(ctx context.Context, creds domain.Credentials, query string, out any) error {
	if creds.APIKey == "" {
		return fmt.Errorf("pnw: missing api key")
	}

	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("api_key", creds.APIKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", creds.APIKey)
	if creds.BotKey != "" {
		req.Header.Set("X-Bot-Key", creds.BotKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pnw request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read pnw response: %w", err)
	}

	var gr graphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		if resp.StatusCode >= 300 {
			return &RemoteError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decode pnw response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, len(gr.Errors))
		for i, e := range gr.Errors {
			msgs[i] = e.Message
		}
		return &RemoteError{Status: resp.StatusCode, Messages: msgs}
	}
	if resp.StatusCode >= 300 {
		return &RemoteError{Status: resp.StatusCode}
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return fmt.Errorf("pnw: empty data")
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("decode pnw data: %w", err)
	}
	return nil
}
