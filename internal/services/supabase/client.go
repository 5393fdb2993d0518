// Package supabase reads clients and usage records from a Supabase
// project through its PostgREST endpoint.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

const (
	restPath       = "/rest/v1/"
	clientsTable   = "clients"
	usageTable     = "data_usage"
	clientsSelect  = "id,name,email,created_at,updated_at"
	usageSelect    = "*,clients(name,email)"
	defaultTimeout = 30 * time.Second
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("supabase temporarily unavailable")

// APIError is a non-2xx response from PostgREST.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase request failed (status %d): %s", e.StatusCode, e.Body)
}

// Client is a read-only PostgREST client for the dashboard tables.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
	anonKey    string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the project at baseURL using the anon key.
func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "supabase",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// Name identifies the data source in logs and the UI.
func (c *Client) Name() string {
	return "supabase"
}

type clientRow struct {
	ID        any    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type usageRow struct {
	ID         any `json:"id"`
	ClientID   any `json:"client_id"`
	Date       any `json:"date"`
	Kit1Usage  any `json:"kit_1_usage"`
	Kit2Usage  any `json:"kit_2_usage"`
	TotalUsage any `json:"total_usage"`
	Clients    *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"clients"`
}

// ListClients returns the client roster ordered by name.
func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	params := url.Values{}
	params.Set("select", clientsSelect)
	params.Set("order", "name.asc")

	var rows []clientRow
	if err := c.get(ctx, clientsTable, params, &rows); err != nil {
		return nil, err
	}

	clients := make([]models.Client, 0, len(rows))
	for _, r := range rows {
		cl := models.Client{
			ID:    models.CoerceString(r.ID),
			Name:  r.Name,
			Email: r.Email,
		}
		if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
			cl.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, r.UpdatedAt); err == nil {
			cl.UpdatedAt = t
		}
		clients = append(clients, cl)
	}
	return clients, nil
}

// ListUsage returns usage records with their client's name and email,
// newest first, filtered server side by criteria.
func (c *Client) ListUsage(ctx context.Context, criteria models.FilterCriteria) ([]models.UsageRecord, error) {
	var rows []usageRow
	if err := c.get(ctx, usageTable, usageParams(criteria), &rows); err != nil {
		return nil, err
	}

	records := make([]models.UsageRecord, 0, len(rows))
	for _, r := range rows {
		raw := models.RawUsageRecord{
			ID:         r.ID,
			ClientID:   r.ClientID,
			Date:       r.Date,
			Kit1Usage:  r.Kit1Usage,
			Kit2Usage:  r.Kit2Usage,
			TotalUsage: r.TotalUsage,
		}
		if r.Clients != nil {
			raw.ClientName = r.Clients.Name
			raw.ClientEmail = r.Clients.Email
		}
		records = append(records, raw.Normalize())
	}
	return records, nil
}

// usageParams translates criteria into PostgREST query parameters.
func usageParams(criteria models.FilterCriteria) url.Values {
	params := url.Values{}
	params.Set("select", usageSelect)
	params.Set("order", "date.desc")

	if criteria.ClientID != "" {
		params.Add("client_id", "eq."+criteria.ClientID)
	}
	if criteria.StartDate != "" {
		params.Add("date", "gte."+criteria.StartDate)
	}
	if criteria.EndDate != "" {
		params.Add("date", "lte."+criteria.EndDate)
	}
	if criteria.MinUsage != nil {
		params.Add("total_usage", "gte."+models.FormatGB(*criteria.MinUsage))
	}
	if criteria.MaxUsage != nil {
		params.Add("total_usage", "lte."+models.FormatGB(*criteria.MaxUsage))
	}
	return params
}

// get fetches a table through the circuit breaker and decodes the JSON
// array into out. Numbers are kept as json.Number for later coercion.
func (c *Client) get(ctx context.Context, table string, params url.Values, out any) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, table, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrUnavailable
		}
		return err
	}

	dec := json.NewDecoder(strings.NewReader(body.(string)))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", table, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, table string, params url.Values) (string, error) {
	endpoint := c.baseURL + restPath + table + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create %s request: %w", table, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", table, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", logger.KeyError, err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", table, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}
