package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/iwvelando/emi-calculator/internal/config"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"go.uber.org/zap"
)

// Fetcher retrieves a fresh rate table.
type Fetcher interface {
	FetchRates(ctx context.Context) (RateTable, error)
}

// Client talks to an exchangerate-api.com compatible provider.
type Client struct {
	http   *resty.Client
	apiKey string
	base   string
	logger *zap.Logger
	now    func() time.Time
}

type latestResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	ErrorType       string             `json:"error-type"`
}

// NewClient creates a Client from the exchange configuration.
func NewClient(logger *zap.Logger, conf config.ExchangeConfig) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(conf.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultExchangeBaseURL
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultExchangeTimeout
	}
	base := strings.ToUpper(strings.TrimSpace(conf.BaseCurrency))
	if base == "" {
		base = constants.DefaultCurrency
	}

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: strings.TrimSpace(conf.APIKey),
		base:   base,
		logger: logger,
		now:    time.Now,
	}
}

// Base returns the currency rates are quoted against.
func (c *Client) Base() string {
	return c.base
}

// FetchRates requests the latest rates for the configured base currency.
func (c *Client) FetchRates(ctx context.Context) (RateTable, error) {
	if c.apiKey == "" {
		return RateTable{}, ErrMissingAPIKey
	}

	var payload latestResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"key":  c.apiKey,
			"base": c.base,
		}).
		SetResult(&payload).
		SetError(&payload).
		Get("/{key}/latest/{base}")
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: request failed: %v", ErrUpstream, err)
	}

	if resp.IsError() {
		c.logger.Warn("exchange rate request rejected",
			zap.String("op", "exchange.FetchRates"),
			zap.Int("status", resp.StatusCode()),
			zap.String("errorType", payload.ErrorType),
		)
		return RateTable{}, fmt.Errorf("%w: status %d %s", ErrUpstream, resp.StatusCode(), payload.ErrorType)
	}
	if payload.Result != "success" {
		return RateTable{}, fmt.Errorf("%w: result %q %s", ErrUpstream, payload.Result, payload.ErrorType)
	}
	if len(payload.ConversionRates) == 0 {
		return RateTable{}, fmt.Errorf("%w: response contained no rates", ErrUpstream)
	}

	base := payload.BaseCode
	if base == "" {
		base = c.base
	}
	table := newRateTable(base, payload.ConversionRates, c.now().UTC())

	c.logger.Debug("fetched exchange rates",
		zap.String("op", "exchange.FetchRates"),
		zap.String("base", table.Base),
		zap.Int("rates", len(table.Rates)),
	)
	return table, nil
}
