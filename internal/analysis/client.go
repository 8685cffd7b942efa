package analysis

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

	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/domain"
)

// ErrAnalysisFailed is the generic failure surfaced to customers
var ErrAnalysisFailed = errors.New("analysis failed, please check your connection")

// Analyzer produces an analysis document for a profile
type Analyzer interface {
	Analyze(ctx context.Context, profile domain.CustomerProfile) (*domain.AnalysisDocument, error)
}

// Client calls the external analysis service over HTTP JSON
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new analysis service client
func NewClient(cfg config.AnalysisConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type analyzeRequest struct {
	Profile domain.CustomerProfile `json:"profile"`
	Mode    string                 `json:"mode"`
}

// Analyze requests an analysis. Every failure is logged and reported as ErrAnalysisFailed.
func (c *Client) Analyze(ctx context.Context, profile domain.CustomerProfile) (*domain.AnalysisDocument, error) {
	doc, err := c.analyze(ctx, profile)
	if err != nil {
		c.logger.Error("Analysis request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return doc, nil
}

func (c *Client) analyze(ctx context.Context, profile domain.CustomerProfile) (*domain.AnalysisDocument, error) {
	if c.endpoint == "" {
		return nil, errors.New("analysis endpoint is not configured")
	}

	jsonData, err := json.Marshal(analyzeRequest{Profile: profile, Mode: Mode(profile)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var doc domain.AnalysisDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	doc.Reasoning = RedactCrystals(doc.Reasoning, doc.SuggestedCrystals)
	if profile.IsTimeUnsure && doc.Bazi.Time == "" {
		doc.Bazi.Time = "吉時"
	}
	return &doc, nil
}

// Mode selects the analysis strategy: strict four-pillar balance when the birth time is
// known, wish-oriented when it is not.
func Mode(profile domain.CustomerProfile) string {
	if profile.IsTimeUnsure || strings.TrimSpace(profile.BirthTime) == "" {
		return "wish"
	}
	return "bazi"
}

// RedactCrystals removes suggested crystal names from the reasoning prose
func RedactCrystals(reasoning string, crystals []string) string {
	for _, name := range crystals {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		reasoning = strings.ReplaceAll(reasoning, name, "水晶")
	}
	return reasoning
}
