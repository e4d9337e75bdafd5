package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/httpx"
)

const (
	NameExchangeRateAPI  = "exchangerate-api"
	NameOpenERAPI        = "open-er-api"
	NameExchangeRatesAPI = "exchangeratesapi"
)

var (
	_ application.RateSource   = (*JSONRatesSource)(nil)
	_ application.Configurable = (*JSONRatesSource)(nil)
)

// latestResp covers the "latest rates" payloads of the supported APIs:
// exchangerate-api (base), open.er-api (result, base_code) and
// exchangeratesapi.io (success, base, error).
type latestResp struct {
	Success  *bool              `json:"success,omitempty"`
	Result   string             `json:"result,omitempty"`
	Base     string             `json:"base"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
	Error    *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
	ErrorType string `json:"error-type,omitempty"`
}

func (r latestResp) base() string {
	if r.Base != "" {
		return r.Base
	}
	return r.BaseCode
}

func (r latestResp) check() error {
	if r.Success != nil && !*r.Success {
		if r.Error != nil {
			return fmt.Errorf("%w: %d %s", ErrUnsuccessful, r.Error.Code, r.Error.Info)
		}
		return ErrUnsuccessful
	}
	if r.Result != "" && r.Result != "success" {
		return fmt.Errorf("%w: %s %s", ErrUnsuccessful, r.Result, r.ErrorType)
	}
	return nil
}

// rate derives from->to from a rates table keyed against the response base.
// Providers on a fixed base (EUR on the free exchangeratesapi plan) are crossed.
func (r latestResp) rate(from, to string) (float64, error) {
	base := r.base()
	lookup := func(c string) (float64, bool) {
		if c == base {
			return 1.0, true
		}
		v, ok := r.Rates[c]
		return v, ok && v > 0
	}
	toRate, ok := lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPairNotFound, to)
	}
	if base == "" || from == base {
		return toRate, nil
	}
	fromRate, ok := lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPairNotFound, from)
	}
	return toRate / fromRate, nil
}

// JSONRatesSource is a live rate candidate backed by a public "latest rates" endpoint.
type JSONRatesSource struct {
	name   string
	base   string
	apiKey string
	keyed  bool
	url    func(base *url.URL, from, key string) *url.URL
	client *httpx.Client
}

func (s *JSONRatesSource) Name() string { return s.name }

// Configured is false for keyed sources whose key is empty or still the placeholder.
func (s *JSONRatesSource) Configured() bool {
	if s.base == "" {
		return false
	}
	if !s.keyed {
		return true
	}
	return s.apiKey != "" && s.apiKey != config.PlaceholderAPIKey
}

func (s *JSONRatesSource) Latest(ctx context.Context, from, to string) (float64, error) {
	if !s.Configured() {
		return 0, fmt.Errorf("%s: %w", s.name, ErrNotConfigured)
	}
	u, err := url.Parse(strings.TrimRight(s.base, "/"))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid base url: %w", s.name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(u, from, s.apiKey).String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%s: create request: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")

	var body latestResp
	if err := s.client.DoJSON(ctx, req, &body); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}
	if err := body.check(); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}
	rate, err := body.rate(from, to)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}
	return rate, nil
}

func clientOrDefault(c *httpx.Client) *httpx.Client {
	if c == nil {
		return &httpx.Client{}
	}
	return c
}

// NewExchangeRateAPI queries GET {base}/v4/latest/{FROM}; no key required.
func NewExchangeRateAPI(baseURL string, client *httpx.Client) *JSONRatesSource {
	return &JSONRatesSource{
		name:   NameExchangeRateAPI,
		base:   baseURL,
		client: clientOrDefault(client),
		url: func(u *url.URL, from, _ string) *url.URL {
			return u.JoinPath("v4", "latest", url.PathEscape(from))
		},
	}
}

// NewOpenERAPI queries GET {base}/v6/latest/{FROM}; no key required.
func NewOpenERAPI(baseURL string, client *httpx.Client) *JSONRatesSource {
	return &JSONRatesSource{
		name:   NameOpenERAPI,
		base:   baseURL,
		client: clientOrDefault(client),
		url: func(u *url.URL, from, _ string) *url.URL {
			return u.JoinPath("v6", "latest", url.PathEscape(from))
		},
	}
}

// NewExchangeRatesAPI queries GET {base}/v1/latest?access_key=KEY&base=FROM.
// Free plans ignore base and answer in EUR; the response is crossed when needed.
func NewExchangeRatesAPI(baseURL, apiKey string, client *httpx.Client) *JSONRatesSource {
	return &JSONRatesSource{
		name:   NameExchangeRatesAPI,
		base:   baseURL,
		apiKey: apiKey,
		keyed:  true,
		client: clientOrDefault(client),
		url: func(u *url.URL, from, key string) *url.URL {
			u = u.JoinPath("v1", "latest")
			q := u.Query()
			q.Set("access_key", key)
			q.Set("base", from)
			u.RawQuery = q.Encode()
			return u
		},
	}
}
