package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	infraconfig "github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
)

const (
	SortByRate  = "rate"
	SortByFee   = "fee"
	SortBySpeed = "speed"
)

var (
	validate = validator.New()

	errInvalidAmount = errors.New("amount must be a number")
	errInvalidSort   = errors.New("sort must be one of rate, fee, speed")
)

type MarketRateParams struct {
	From string `validate:"required"`
	To   string `validate:"required"`
}

type RatesParams struct {
	From   string `validate:"required"`
	To     string `validate:"required"`
	Amount float64
	Sort   string `validate:"omitempty,oneof=rate fee speed"`
}

func bindMarketRateParams(r *http.Request) (MarketRateParams, error) {
	var p MarketRateParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "from", q, &p.From); err != nil {
		return p, fmt.Errorf("invalid from: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", q, &p.To); err != nil {
		return p, fmt.Errorf("invalid to: %w", err)
	}
	if err := validate.Struct(p); err != nil {
		return p, translate(err)
	}
	return p, nil
}

// bindRatesParams reads from, to, amount (default 1000) and sort. Amount range
// checks belong to the quote engine; here it only has to parse.
func bindRatesParams(r *http.Request) (RatesParams, error) {
	p := RatesParams{Amount: infraconfig.DefaultAmount}
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "from", q, &p.From); err != nil {
		return p, fmt.Errorf("invalid from: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", q, &p.To); err != nil {
		return p, fmt.Errorf("invalid to: %w", err)
	}
	if q.Has("amount") {
		if err := runtime.BindQueryParameter("form", true, false, "amount", q, &p.Amount); err != nil {
			return p, errInvalidAmount
		}
	}
	if err := runtime.BindQueryParameter("form", true, false, "sort", q, &p.Sort); err != nil {
		return p, errInvalidSort
	}
	if err := validate.Struct(p); err != nil {
		return p, translate(err)
	}
	return p, nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "From", "To":
		return domain.ErrMissingCurrency
	case "Sort":
		return errInvalidSort
	default:
		return err
	}
}
