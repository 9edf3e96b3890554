package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2/google"
)

const (
	defaultEndpoint = "https://connectors.googleapis.com"
	defaultTimeout  = 60 * time.Second

	// cloudPlatformScope is the OAuth scope the connectors API requires.
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

type Config struct {
	Logger *slog.Logger

	ProjectID  string
	Location   string
	Connection string

	// Endpoint overrides the connectors API base URL, for tests.
	Endpoint string
	// HTTPClient overrides the authenticated client, for tests. When nil a
	// client backed by application-default credentials is built.
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if cfg.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if cfg.Location == "" {
		return fmt.Errorf("location is required")
	}
	if cfg.Connection == "" {
		return fmt.Errorf("connection is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return nil
}

// Client executes SQL through an Integration Connectors connection.
type Client struct {
	log        *slog.Logger
	cfg        Config
	httpClient *http.Client
}

// New creates a client. Credentials come from the environment
// (GOOGLE_APPLICATION_CREDENTIALS or the platform default); this code never
// parses them itself.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate connector config: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = google.DefaultClient(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load application default credentials: %w", err)
		}
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		log:        cfg.Logger,
		cfg:        cfg,
		httpClient: httpClient,
	}, nil
}

// executeSQLRequest is the executeSqlQuery action request body.
type executeSQLRequest struct {
	SQLQuery sqlQuery `json:"sqlQuery"`
}

type sqlQuery struct {
	Query string `json:"query"`
}

// executeSQLResponse is the executeSqlQuery action response body.
type executeSQLResponse struct {
	Results []Row `json:"results"`
}

// apiError is the error envelope Google APIs return on non-2xx responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ExecuteSQL sends the SQL to the connection and returns the rows. Any error
// from the service is passed through unchanged.
func (c *Client) ExecuteSQL(ctx context.Context, sql string) (*QueryResult, error) {
	url := fmt.Sprintf("%s/v2/projects/%s/locations/%s/connections/%s:executeSqlQuery",
		c.cfg.Endpoint, c.cfg.ProjectID, c.cfg.Location, c.cfg.Connection)

	body, err := json.Marshal(executeSQLRequest{SQLQuery: sqlQuery{Query: sql}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("executing SQL via connector", "connection", c.cfg.Connection, "sqlLen", len(sql))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connector request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read connector response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("connector returned %s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("connector returned %s", resp.Status)
	}

	var parsed executeSQLResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode connector response: %w", err)
	}

	result := &QueryResult{
		Columns: columnsOf(parsed.Results),
		Rows:    parsed.Results,
		Count:   len(parsed.Results),
	}
	c.log.Debug("connector query completed", "rows", result.Count, "duration", time.Since(start))
	return result, nil
}
