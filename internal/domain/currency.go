package domain

type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Currencies is the fixed currency directory offered to clients.
func Currencies() []Currency {
	return []Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "GBP", Name: "British Pound", Symbol: "£"},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
		{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
		{Code: "MXN", Name: "Mexican Peso", Symbol: "$"},
		{Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
		{Code: "NGN", Name: "Nigerian Naira", Symbol: "₦"},
		{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	}
}
