package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned without touching the network when the client's
// local request budget cannot be met before ctx is done.
var ErrRateLimited = errors.New("httpx: local rate limit exceeded")

// StatusError carries a non-200 upstream status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

type Client struct {
	HTTP    *http.Client
	Token   string
	Limiter *rate.Limiter
	Log     *zap.Logger
}

// NewLimiter allows perSecond requests with an equal burst; zero or negative disables limiting.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// DoJSON sends req and decodes a 200 JSON body into out. Each attempt waits for
// the limiter within ctx. 5xx and transport errors are retried with exponential
// backoff until ctx is done; other statuses and decode errors are permanent.
// The Client is never mutated, so one value may serve concurrent requests.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	req = req.WithContext(ctx)

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	attempt := 0
	op := func() error {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrRateLimited, err))
			}
		}
		attempt++
		resp, err := hc.Do(req)
		if err != nil {
			log.Debug("httpx.request_failed", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path), zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			log.Debug("httpx.server_error", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path), zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			return &StatusError{Code: resp.StatusCode}
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(&StatusError{Code: resp.StatusCode})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}
