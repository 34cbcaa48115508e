// Package opendata provides a client for the NHSBSA Open Data Portal,
// used to look up the number of community pharmacy premises from the
// Consolidated Pharmaceutical List. The count gives context for the
// operations demand side of the projections.
package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/pharmacast/workforce-api/internal/config"
	"go.uber.org/zap"
)

// resourceIDPattern matches Consolidated Pharmaceutical List resource names,
// e.g. CONSOL_PHARMACY_LIST_202526Q1FINAL.
var resourceIDPattern = regexp.MustCompile(`^CONSOL_PHARMACY_LIST_(\d{4})(\d{2})Q(\d)(FINAL)?$`)

// Client queries the NHSBSA datastore_search API.
type Client struct {
	httpClient *http.Client
	cfg        *config.OpenDataConfig
	logger     *zap.Logger
}

// PharmacyList summarises one Consolidated Pharmaceutical List quarter.
type PharmacyList struct {
	ResourceID    string `json:"resource_id"`
	FinancialYear string `json:"financial_year"`
	Quarter       int    `json:"quarter"`
	Final         bool   `json:"final"`
	PharmacyCount int    `json:"pharmacy_count"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Total int `json:"total"`
	} `json:"result"`
	Error map[string]any `json:"error,omitempty"`
}

// NewClient creates a new open data client.
// Returns nil if the integration is disabled.
func NewClient(cfg *config.OpenDataConfig, logger *zap.Logger) *Client {
	if cfg == nil || !cfg.Enabled {
		logger.Info("NHSBSA open data integration disabled")
		return nil
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		cfg:        cfg,
		logger:     logger,
	}
}

// IsEnabled returns true if the client is initialized.
func (c *Client) IsEnabled() bool {
	return c != nil
}

// ParseResourceID extracts the financial year and quarter from a
// Consolidated Pharmaceutical List resource name.
func ParseResourceID(resourceID string) (financialYear string, quarter int, final bool, err error) {
	m := resourceIDPattern.FindStringSubmatch(resourceID)
	if m == nil {
		return "", 0, false, fmt.Errorf("unrecognized resource ID %q", resourceID)
	}
	q, _ := strconv.Atoi(m[3])
	return m[1] + "/" + m[2], q, m[4] == "FINAL", nil
}

// FetchPharmacyList returns the pharmacy premises count for the configured
// resource. A zero-row search is issued; the API reports the full record
// total without transferring the dataset.
func (c *Client) FetchPharmacyList(ctx context.Context) (*PharmacyList, error) {
	if c == nil {
		return nil, fmt.Errorf("open data client not initialized")
	}

	fy, quarter, final, err := ParseResourceID(c.cfg.ResourceID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("resource_id", c.cfg.ResourceID)
	q.Set("limit", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open data request returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode open data response: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("datastore_search reported failure for resource %s", c.cfg.ResourceID)
	}

	c.logger.Debug("Fetched pharmacy list total",
		zap.String("resource_id", c.cfg.ResourceID),
		zap.Int("total", body.Result.Total),
	)

	return &PharmacyList{
		ResourceID:    c.cfg.ResourceID,
		FinancialYear: fy,
		Quarter:       quarter,
		Final:         final,
		PharmacyCount: body.Result.Total,
	}, nil
}
