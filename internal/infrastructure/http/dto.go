package httpserver

import (
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ratePlaces  = 6
	moneyPlaces = 2
)

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

type marketRateDTO struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
}

type offerDTO struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	ValidUntil  string `json:"validUntil"`
}

type providerDTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Logo          string     `json:"logo"`
	Rating        float64    `json:"rating"`
	TransferSpeed string     `json:"transferSpeed"`
	MinAmount     float64    `json:"minAmount"`
	MaxAmount     float64    `json:"maxAmount"`
	Features      []string   `json:"features"`
	Offers        []offerDTO `json:"offers"`
}

type quoteDTO struct {
	providerDTO
	Rate             float64  `json:"rate"`
	Spread           float64  `json:"spread"`
	Fee              float64  `json:"fee"`
	AmountReceived   float64  `json:"amountReceived"`
	TotalCost        float64  `json:"totalCost"`
	EffectiveRate    float64  `json:"effectiveRate"`
	MarketRateSource string   `json:"marketRateSource"`
	AppliedOffers    []string `json:"appliedOffers"`
	WithinLimits     bool     `json:"withinLimits"`
}

type ratesResponse struct {
	MarketRate marketRateDTO `json:"marketRate"`
	Providers  []quoteDTO    `json:"providers"`
	Timestamp  time.Time     `json:"timestamp"`
}

type healthDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func toMarketRateDTO(m domain.MarketRate) marketRateDTO {
	return marketRateDTO{
		From:        m.Pair.From,
		To:          m.Pair.To,
		Rate:        round(m.Rate, ratePlaces),
		LastUpdated: m.ObservedAt.UTC(),
		Source:      string(m.Source),
	}
}

func toProviderDTO(p domain.Provider) providerDTO {
	offers := make([]offerDTO, 0, len(p.Offers))
	for _, o := range p.Offers {
		offers = append(offers, offerDTO{
			Type:        string(o.Kind),
			Description: o.Description,
			ValidUntil:  o.ValidUntil.UTC().Format(time.DateOnly),
		})
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return providerDTO{
		ID:            p.ID,
		Name:          p.Name,
		Logo:          p.LogoURL,
		Rating:        p.Rating,
		TransferSpeed: string(p.TransferSpeed),
		MinAmount:     p.MinAmount,
		MaxAmount:     p.MaxAmount,
		Features:      features,
		Offers:        offers,
	}
}

func toQuoteDTO(q domain.Quote) quoteDTO {
	applied := make([]string, 0, len(q.AppliedOffers))
	for _, k := range q.AppliedOffers {
		applied = append(applied, string(k))
	}
	return quoteDTO{
		providerDTO:      toProviderDTO(q.Provider),
		Rate:             round(q.AppliedRate, ratePlaces),
		Spread:           q.Spread,
		Fee:              round(q.Fee, moneyPlaces),
		AmountReceived:   round(q.AmountReceived, moneyPlaces),
		TotalCost:        round(q.RequestedAmount, moneyPlaces),
		EffectiveRate:    round(q.EffectiveRate, ratePlaces),
		MarketRateSource: string(q.MarketRateSource),
		AppliedOffers:    applied,
		WithinLimits:     q.WithinLimits,
	}
}
