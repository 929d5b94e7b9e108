package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Colors for terminal output
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

var (
	// ErrMissingID is returned when updating, confirming or deleting a
	// record that was never saved.
	ErrMissingID = errors.New("record has no id")
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
)

const loggedUserPath = "/api/method/frappe.auth.get_logged_user"

// Client handles API requests
type Client struct {
	Config     *Config
	HTTPClient *http.Client
	Logger     *slog.Logger
	ActiveURL  string
	Mode       string // "vpn" or "internet"
}

// NewClient creates a new API client. A nil logger discards everything.
func NewClient(config *Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		Config:     config,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
		ActiveURL:  config.ERPURL,
		Mode:       "internet",
	}
}

// WithTimeout bounds ctx by the configured request timeout.
func (c *Client) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.HTTPClient.Timeout)
}

// DetectConnection tries VPN first, falls back to internet
func (c *Client) DetectConnection(ctx context.Context) {
	if c.Config.ERPVPN != "" {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.Config.ERPVPN+loggedUserPath, nil)
		if err == nil {
			c.authorize(req)
			resp, err := c.HTTPClient.Do(req)
			if resp != nil {
				resp.Body.Close()
			}
			if err == nil && resp.StatusCode == http.StatusOK {
				c.Mode = "vpn"
				c.ActiveURL = c.Config.ERPVPN
				c.Logger.Debug("connection detected", "mode", c.Mode, "url", c.ActiveURL)
				return
			}
		}
	}

	c.Mode = "internet"
	c.ActiveURL = c.Config.ERPURL
	c.Logger.Debug("connection detected", "mode", c.Mode, "url", c.ActiveURL)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.Config.APIKey, c.Config.APISecret))
	if c.Mode == "internet" && c.Config.NginxCookie != "" {
		req.AddCookie(&http.Cookie{Name: c.Config.NginxCookieName, Value: c.Config.NginxCookie})
	}
}

// Request makes an API request against /api/resource/<endpoint>. Numbers in
// the response are kept as json.Number so money survives decoding.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	fullURL := fmt.Sprintf("%s/api/resource/%s", c.ActiveURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	c.authorize(req)

	log := c.Logger.With("request_id", requestID, "method", method, "endpoint", endpoint)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Error("request failed", "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Info("request", "status", resp.StatusCode, "duration", time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, ErrNotFound)
	}

	var result map[string]interface{}
	if len(bytes.TrimSpace(respBody)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(respBody))
		dec.UseNumber()
		if err := dec.Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %s", string(respBody))
		}
	}

	if exc, ok := result["exception"]; ok {
		log.Warn("api exception", "exception", exc)
		return nil, fmt.Errorf("API error: %v", exc)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	return result, nil
}

// decodeData decodes the "data" member of a response into out.
func decodeData(result map[string]interface{}, out interface{}) error {
	data, ok := result["data"]
	if !ok {
		return fmt.Errorf("no data found")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to re-encode data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// Ping returns the user the API key authenticates as.
func (c *Client) Ping(ctx context.Context) (string, error) {
	c.DetectConnection(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ActiveURL+loggedUserPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	_ = json.Unmarshal(body, &result)

	if msg, ok := result["message"].(string); ok && msg != "" {
		return msg, nil
	}
	return "", fmt.Errorf("authentication failed: %s", string(body))
}

// CmdPing tests the connection
func (c *Client) CmdPing(ctx context.Context) error {
	fmt.Printf("%sTesting connection to ERP...%s\n", Blue, Reset)

	user, err := c.Ping(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s✓ Connection successful%s\n", Green, Reset)
	fmt.Printf("  Authenticated as: %s%s%s\n", Yellow, user, Reset)
	if c.Mode == "vpn" {
		fmt.Printf("  Mode: %sVPN direct%s (%s)\n", Cyan, Reset, c.ActiveURL)
	} else {
		fmt.Printf("  Mode: %sInternet%s (%s)\n", Yellow, Reset, c.ActiveURL)
	}
	return nil
}

// CmdConfig shows current configuration
func (c *Client) CmdConfig(ctx context.Context) error {
	fmt.Printf("%sCurrent configuration:%s\n", Blue, Reset)
	if c.Config.Path != "" {
		fmt.Printf("  File: %s\n", c.Config.Path)
	}
	if c.Config.ERPVPN != "" {
		fmt.Printf("  VPN URL: %s\n", c.Config.ERPVPN)
	} else {
		fmt.Printf("  VPN URL: %snot configured%s\n", Yellow, Reset)
	}
	fmt.Printf("  Internet URL: %s\n", c.Config.ERPURL)
	fmt.Printf("  API Key: %s\n", maskSecret(c.Config.APIKey))
	fmt.Printf("  API Secret: ****\n")

	if c.Config.NginxCookie != "" {
		fmt.Printf("  Nginx Cookie: configured\n")
	} else {
		fmt.Printf("  Nginx Cookie: %snot configured%s (needed for internet mode)\n", Yellow, Reset)
	}
	fmt.Printf("  Log: %s (%s)\n", c.Config.LogFile, c.Config.LogLevel)
	fmt.Printf("  Request timeout: %s\n", c.Config.RequestTimeout)

	fmt.Println()
	c.DetectConnection(ctx)
	if c.Mode == "vpn" {
		fmt.Printf("  Active mode: %sVPN direct%s\n", Cyan, Reset)
	} else {
		fmt.Printf("  Active mode: %sInternet%s\n", Yellow, Reset)
	}
	fmt.Printf("  Active URL: %s\n", c.ActiveURL)

	return nil
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:8] + "..."
}
