package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Defaults for the CoinGecko markets endpoint.
const (
	DefaultBaseURL    = "https://api.coingecko.com/api/v3"
	DefaultVsCurrency = "eur"
	DefaultPerPage    = 50
	DefaultTimeout    = 10 * time.Second

	marketsPath = "/coins/markets"
)

// errNotArray is returned when the payload decodes to JSON null.
var errNotArray = errors.New("payload is not a JSON array")

// ClientConfig holds the request inputs for the markets endpoint.
type ClientConfig struct {
	BaseURL    string
	VsCurrency string
	PerPage    int
	Timeout    time.Duration
	UserAgent  string
}

// Client fetches asset lists from the markets endpoint.
type Client struct {
	cfg  ClientConfig
	http *resty.Client
}

// NewClient creates a Client with its own resty client.
func NewClient(cfg ClientConfig) *Client {
	return NewClientWithResty(cfg, resty.New())
}

// NewClientWithResty creates a Client around an existing resty client.
// Retries are disabled on the given client: the scheduler's cadence is the only retry.
func NewClientWithResty(cfg ClientConfig, rc *resty.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.VsCurrency == "" {
		cfg.VsCurrency = DefaultVsCurrency
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	rc.SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{cfg: cfg, http: rc}
}

// Config returns the effective configuration after defaults were applied.
func (c *Client) Config() ClientConfig {
	return c.cfg
}

// FetchAssets requests one page of market data.
// Every failure is a *FetchError.
func (c *Client) FetchAssets(ctx context.Context) ([]Asset, error) {
	log := zerolog.Ctx(ctx)

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": c.cfg.VsCurrency,
			"per_page":    strconv.Itoa(c.cfg.PerPage),
		}).
		Get(marketsPath)
	if err != nil {
		return nil, &FetchError{Kind: FetchKindNetwork, Err: err}
	}

	log.Debug().
		Str("component", "market").
		Int("status", resp.StatusCode()).
		Dur("duration_ms", time.Since(start)).
		Int("bytes", len(resp.Body())).
		Msg("markets response received")

	if !resp.IsSuccess() {
		return nil, &FetchError{Kind: FetchKindStatus, StatusCode: resp.StatusCode()}
	}

	assets, err := decodeAssets(resp.Body())
	if err != nil {
		return nil, &FetchError{Kind: FetchKindDecode, Err: err}
	}
	return assets, nil
}

// decodeAssets parses and validates a markets payload.
func decodeAssets(body []byte) ([]Asset, error) {
	var assets []Asset
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		return nil, errNotArray
	}
	for i, a := range assets {
		if a.ID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if a.Name == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingName)
		}
	}
	return assets, nil
}
