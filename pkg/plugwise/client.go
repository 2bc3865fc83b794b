package plugwise

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/config"
)

// retryPause is the wait between failed fetch attempts.
const retryPause = time.Second

// Client talks to a single Stretch or Smile over its XML-over-HTTP status
// interface with basic auth.
type Client struct {
	name       string
	baseURL    string
	username   string
	password   string
	retries    int
	httpClient *http.Client
}

func NewClient(name string, cfg config.DeviceConfig, timeout time.Duration, retries int) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		name:       name,
		baseURL:    fmt.Sprintf("http://%s:%d", cfg.IP, cfg.Port),
		username:   cfg.Username,
		password:   cfg.Password,
		retries:    retries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the configured device name.
func (c *Client) Name() string {
	return c.name
}

// Fetch GETs an endpoint, retrying up to the configured attempt count.
// Context cancellation aborts between attempts.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePlugwise,
		zap.String("device", c.name),
		zap.String("endpoint", endpoint),
	)

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		data, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return data, nil
		}
		lastErr = err
		logger.Warn("Fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.retries),
			zap.Error(err))

		if attempt == c.retries {
			break
		}
		select {
		case <-time.After(retryPause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("device %s %s: %w", c.name, endpoint, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Appliances fetches and parses the appliance-to-meter mapping.
func (c *Client) Appliances(ctx context.Context) (ApplianceMap, error) {
	data, err := c.Fetch(ctx, EndpointAppliances)
	if err != nil {
		return nil, err
	}
	return ParseAppliances(data)
}

// PowerSamples fetches the module list and extracts consumed-power
// measurements for the mapped appliances.
func (c *Client) PowerSamples(ctx context.Context, mapping ApplianceMap) ([]PowerSample, error) {
	data, err := c.Fetch(ctx, EndpointModules)
	if err != nil {
		return nil, err
	}
	return ParsePowerSamples(data, mapping)
}

// MeterTotals fetches the domain objects and extracts the cumulative
// meter counters.
func (c *Client) MeterTotals(ctx context.Context) (*MeterTotals, error) {
	data, err := c.Fetch(ctx, EndpointDomainObjects)
	if err != nil {
		return nil, err
	}
	return ParseMeterTotals(data)
}
