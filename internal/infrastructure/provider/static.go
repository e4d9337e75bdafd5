package provider

import (
	"context"

	"github.com/Na-Rajan/compareremittance/internal/application"
)

const NameStatic = "static"

var _ application.RateSource = (*Static)(nil)

// Static answers every pair with the same rate. Useful in local runs and tests.
type Static struct {
	rate float64
}

func NewStatic(rate float64) *Static { return &Static{rate: rate} }

func (s *Static) Name() string { return NameStatic }

func (s *Static) Latest(_ context.Context, _, _ string) (float64, error) {
	return s.rate, nil
}
