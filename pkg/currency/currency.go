package currency

import (
	"fmt"
	"math"
	"strings"
)

// Code is an ISO currency code supported by the planner.
type Code string

const (
	BRL Code = "BRL"
	USD Code = "USD"
	EUR Code = "EUR"
)

// rates holds how much one BRL buys in each currency.
var rates = map[Code]float64{
	BRL: 1,
	USD: 0.20,
	EUR: 0.18,
}

// Supported reports whether c has an exchange rate.
func Supported(c Code) bool {
	_, ok := rates[c]
	return ok
}

// FromBRL converts an amount in BRL into target.
func FromBRL(amount float64, target Code) (float64, error) {
	rate, ok := rates[target]
	if !ok {
		return 0, fmt.Errorf("unsupported currency %q", target)
	}
	return amount * rate, nil
}

// Format renders amount the way the currency is usually displayed:
// BRL as "R$ 1.234,56", USD as "$1,234.56" and EUR as "€1,234.56".
func Format(amount float64, c Code) string {
	switch c {
	case BRL:
		return formatWith(amount, "R$ ", ".", ",")
	case USD:
		return formatWith(amount, "$", ",", ".")
	case EUR:
		return formatWith(amount, "€", ",", ".")
	default:
		return formatWith(amount, string(c)+" ", ",", ".")
	}
}

func formatWith(amount float64, symbol, thousands, decimal string) string {
	cents := math.Round(math.Abs(amount) * 100)
	negative := amount < 0 && cents != 0

	whole := fmt.Sprintf("%.0f", math.Floor(cents/100))
	frac := int(math.Mod(cents, 100))

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(addThousandsSeparator(whole, thousands))
	b.WriteString(decimal)
	fmt.Fprintf(&b, "%02d", frac)
	return b.String()
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteString(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
