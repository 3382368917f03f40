// Package format renders money and dates for the pt-BR locale.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DateLayout = "02/01/2006"

// Placeholder is printed where a date has not been chosen yet.
const Placeholder = "a definir"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats centavos as Brazilian reais, e.g. "R$ 1.200,00".
func Currency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, printer.Sprintf("%d", cents/100), cents%100)
}

func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(DateLayout)
}

// ISODate is the storage form of a date; empty for the zero time.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
