package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/logx"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// ComparisonAPI is what the HTTP layer needs from the quote engine.
type ComparisonAPI interface {
	ComputeQuotes(ctx context.Context, from, to string, amount float64) (domain.MarketRate, []domain.Quote, error)
	MarketRate(ctx context.Context, from, to string) (domain.MarketRate, error)
	Providers() []domain.Provider
	Currencies() []domain.Currency
}

type Server struct {
	svc     ComparisonAPI
	ping    func(context.Context) error
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

type ServerOption func(*Server)

// WithReadiness sets the dependency check behind /readyz.
func WithReadiness(ping func(context.Context) error) ServerOption {
	return func(s *Server) { s.ping = ping }
}

func WithMetrics(m *metrics.Metrics) ServerOption { return func(s *Server) { s.metrics = m } }
func WithLogger(l *zap.Logger) ServerOption       { return func(s *Server) { s.log = l } }
func WithNow(now func() time.Time) ServerOption   { return func(s *Server) { s.now = now } }

func NewServer(svc ComparisonAPI, opts ...ServerOption) *Server {
	s := &Server{svc: svc}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Server) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Currencies())
}

func (s *Server) GetProviders(w http.ResponseWriter, _ *http.Request) {
	providers := s.svc.Providers()
	out := make([]providerDTO, 0, len(providers))
	for _, p := range providers {
		out = append(out, toProviderDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	params, err := bindRatesParams(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.QuoteRequestsTotal.Inc()
	}
	market, quotes, err := s.svc.ComputeQuotes(r.Context(), params.From, params.To, params.Amount)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rankQuotes(quotes, params.Sort)

	resp := ratesResponse{
		MarketRate: toMarketRateDTO(market),
		Providers:  make([]quoteDTO, 0, len(quotes)),
		Timestamp:  s.now().UTC(),
	}
	for _, q := range quotes {
		resp.Providers = append(resp.Providers, toQuoteDTO(q))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetMarketRate(w http.ResponseWriter, r *http.Request) {
	params, err := bindMarketRateParams(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	market, err := s.svc.MarketRate(r.Context(), params.From, params.To)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMarketRateDTO(market))
}

func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthDTO{Status: "OK", Timestamp: s.now().UTC()})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logx.From(r.Context(), s.log).Error("http.handler_failed", zap.Error(err))
		writeError(w, status, "something went wrong")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingCurrency), errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
