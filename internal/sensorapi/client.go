package sensorapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

var (
	// ErrTransport network failure or non-2xx response
	ErrTransport = errors.New("sensor api transport error")
	// ErrRejected 2xx response carrying success=false
	ErrRejected = errors.New("sensor api rejected request")
	// ErrNoData success=true but data missing or null
	ErrNoData = errors.New("sensor api returned no data")
)

// Options transport settings for Client
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// Client smart-mirror backend REST client
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a client rooted at opts.BaseURL (e.g. "http://mirror.local:3000/api")
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = 200 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(4*opts.RetryWaitTime).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// ResetHeartStatus POST /heart/reset
func (c *Client) ResetHeartStatus(ctx context.Context) error {
	_, err := c.envelope(ctx, http.MethodPost, "/heart/reset", struct{}{}, nil)
	return err
}

// SetSensorEnabled POST /control/sensor/{name} with {"enabled": enabled}
func (c *Client) SetSensorEnabled(ctx context.Context, sensor string, enabled bool) (*models.ControlResponse, error) {
	var out models.ControlResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("sensor", sensor).
		SetBody(models.SensorToggleRequest{Enabled: enabled}).
		SetResult(&out).
		Post("/control/sensor/{sensor}")
	if err := c.check(resp, err, "/control/sensor/"+sensor); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, messageOr(out.Message, "failed to control sensor "+sensor))
	}

	c.logger.Debug("Sensor toggled",
		zap.String("sensor", sensor),
		zap.Bool("enabled", enabled),
	)
	return &out, nil
}

// EnableAll POST /control/enable-all
func (c *Client) EnableAll(ctx context.Context) (*models.ControlResponse, error) {
	return c.controlAll(ctx, "/control/enable-all")
}

// DisableAll POST /control/disable-all
func (c *Client) DisableAll(ctx context.Context) (*models.ControlResponse, error) {
	return c.controlAll(ctx, "/control/disable-all")
}

func (c *Client) controlAll(ctx context.Context, path string) (*models.ControlResponse, error) {
	var out models.ControlResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(struct{}{}).
		SetResult(&out).
		Post(path)
	if err := c.check(resp, err, path); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, messageOr(out.Message, "failed to control sensors"))
	}
	c.logger.Info("All sensors toggled", zap.String("path", path))
	return &out, nil
}

// GetControlStatus GET /control/status
func (c *Client) GetControlStatus(ctx context.Context) (*models.SensorStatus, error) {
	var out models.ControlResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/control/status")
	if err := c.check(resp, err, "/control/status"); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, messageOr(out.Message, "control status unavailable"))
	}
	if out.Sensors == nil {
		return nil, ErrNoData
	}
	return out.Sensors, nil
}

// GetHeartStatus GET /heart/status
func (c *Client) GetHeartStatus(ctx context.Context) (*models.HeartStatus, error) {
	return getData[models.HeartStatus](ctx, c, "/heart/status")
}

// GetHeartBySession GET /heart/session/{id}
func (c *Client) GetHeartBySession(ctx context.Context, sessionID int64) (*models.HeartReading, error) {
	return getData[models.HeartReading](ctx, c, "/heart/session/"+strconv.FormatInt(sessionID, 10))
}

// GetHeartLatest GET /heart/latest
func (c *Client) GetHeartLatest(ctx context.Context) (*models.HeartReading, error) {
	return getData[models.HeartReading](ctx, c, "/heart/latest")
}

// GetHumanTempLatest GET /human-temp/latest
func (c *Client) GetHumanTempLatest(ctx context.Context) (*models.HumanTempReading, error) {
	return getData[models.HumanTempReading](ctx, c, "/human-temp/latest")
}

// GetRoomTempLatest GET /room-temp/latest
func (c *Client) GetRoomTempLatest(ctx context.Context) (*models.RoomTempReading, error) {
	return getData[models.RoomTempReading](ctx, c, "/room-temp/latest")
}

// GetGasLatest GET /gas/latest
func (c *Client) GetGasLatest(ctx context.Context) (*models.GasReading, error) {
	return getData[models.GasReading](ctx, c, "/gas/latest")
}

// DefaultHistoryLimit page size the backend history endpoints use when none is given
const DefaultHistoryLimit = 50

// GetHeartHistory GET /heart?limit=n, newest first
func (c *Client) GetHeartHistory(ctx context.Context, limit int) ([]models.HeartReading, error) {
	return getList[models.HeartReading](ctx, c, "/heart", limit)
}

// GetHumanTempHistory GET /human-temp?limit=n
func (c *Client) GetHumanTempHistory(ctx context.Context, limit int) ([]models.HumanTempReading, error) {
	return getList[models.HumanTempReading](ctx, c, "/human-temp", limit)
}

// GetRoomTempHistory GET /room-temp?limit=n
func (c *Client) GetRoomTempHistory(ctx context.Context, limit int) ([]models.RoomTempReading, error) {
	return getList[models.RoomTempReading](ctx, c, "/room-temp", limit)
}

// GetGasHistory GET /gas?limit=n
func (c *Client) GetGasHistory(ctx context.Context, limit int) ([]models.GasReading, error) {
	return getList[models.GasReading](ctx, c, "/gas", limit)
}

// getList an empty history is an empty slice, not ErrNoData
func getList[T any](ctx context.Context, c *Client, path string, limit int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	env, err := c.envelope(ctx, http.MethodGet, path, nil, map[string]string{"limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, err
	}

	out := []T{}
	if !env.HasData() {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return out, nil
}

func getData[T any](ctx context.Context, c *Client, path string) (*T, error) {
	env, err := c.envelope(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.HasData() {
		return nil, fmt.Errorf("%w: GET %s", ErrNoData, path)
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		c.logger.Error("Failed to decode sensor api data",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &out, nil
}

// envelope executes a request and validates the {success, message, data} wrapper
func (c *Client) envelope(ctx context.Context, method, path string, body any, query map[string]string) (*models.APIResponse, error) {
	var env models.APIResponse
	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(&env)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err := c.check(resp, err, path); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s %s: %s", ErrRejected, method, path, messageOr(env.Message, "success=false"))
	}
	return &env, nil
}

func (c *Client) check(resp *resty.Response, err error, path string) error {
	if err != nil {
		c.logger.Debug("Sensor api call failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s: %v", ErrTransport, path, err)
	}
	if resp.IsError() {
		c.logger.Debug("Sensor api returned error status",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("%w: %s returned %d", ErrTransport, path, resp.StatusCode())
	}
	return nil
}

func messageOr(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
