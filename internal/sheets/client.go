package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/domain"
)

// Client mirrors submitted orders to a spreadsheet through an Apps Script webhook.
// Delivery is fire-and-forget: the response body is never inspected.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new spreadsheet webhook client
func NewClient(cfg config.SheetsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether a webhook URL is configured
func (c *Client) Enabled() bool {
	return c != nil && c.webhookURL != ""
}

// Sync posts the flattened record. A missing webhook URL is a no-op.
func (c *Client) Sync(ctx context.Context, record *domain.CustomerRecord) error {
	if !c.Enabled() {
		return nil
	}
	if record.ShippingDetails == nil {
		return fmt.Errorf("record %s has no shipping details to sync", record.ID)
	}
	return c.post(ctx, Flatten(record))
}

// Ping sends the test payload the Apps Script answers with "Ping OK"
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("sheets webhook URL is not configured")
	}
	return c.post(ctx, map[string]bool{"test": true})
}

func (c *Client) post(ctx context.Context, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Apps Script web apps reject preflighted content types
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("Sheets webhook delivered", zap.Int("status", resp.StatusCode))
	return nil
}
