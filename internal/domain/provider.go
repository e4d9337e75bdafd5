package domain

// SpeedClass is a transfer-speed label such as "Same day" or "1-2 days".
type SpeedClass string

// Provider is immutable reference data loaded once at process start.
type Provider struct {
	ID            string
	Name          string
	LogoURL       string
	Rating        float64
	TransferSpeed SpeedClass
	MinAmount     float64
	MaxAmount     float64
	Features      []string
	Offers        []Offer
}

// Clone returns a copy that shares no slices with p.
func (p Provider) Clone() Provider {
	out := p
	if p.Features != nil {
		out.Features = append([]string(nil), p.Features...)
	}
	if p.Offers != nil {
		out.Offers = append([]Offer(nil), p.Offers...)
	}
	return out
}

// Accepts reports whether amount falls within the provider's transfer limits.
func (p Provider) Accepts(amount float64) bool {
	return amount >= p.MinAmount && amount <= p.MaxAmount
}
