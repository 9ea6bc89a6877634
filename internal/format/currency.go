// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormat renders a parsed amount for one currency.
type CurrencyFormat func(amount decimal.Decimal) string

// Currencies maps upper-case ISO codes to their formatter. Codes not listed
// render as a grouped number followed by the code.
var Currencies = map[string]CurrencyFormat{
	"BRL": prefixed("R$ "),
	"USD": prefixed("$"),
	"EUR": prefixed("€"),
	"GBP": prefixed("£"),
}

var amountPrinter = message.NewPrinter(language.English)

func prefixed(symbol string) CurrencyFormat {
	return func(amount decimal.Decimal) string {
		return symbol + groupedNumber(amount)
	}
}

// groupedNumber renders amount with thousands separators and two decimals.
func groupedNumber(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return amountPrinter.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Amount formats a monetary amount. Amounts that do not parse as a number,
// such as "R$ 10k" or "in kind", are returned verbatim.
func Amount(amount, code string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(amount, ",", ""))
	if err != nil {
		return amount
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if fn, ok := Currencies[code]; ok {
		return fn(d)
	}
	if code == "" {
		return groupedNumber(d)
	}
	return groupedNumber(d) + " " + code
}
