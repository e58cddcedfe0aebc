// Package format renders engine amounts and quantities for display. The
// engine itself only returns raw numbers.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var unitLabels = map[string]string{
	"m2": "m²",
	"m3": "m³",
}

// Formatter renders values for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a formatter for a BCP 47 locale such as "es-ES".
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Currency renders amount with two decimals, prefixed by the ISO code.
func (f *Formatter) Currency(amount float64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("parse currency %q: %w", code, err)
	}
	return unit.String() + " " + f.printer.Sprintf("%.2f", amount), nil
}

// Quantity renders qty with two decimals followed by its unit.
func (f *Formatter) Quantity(qty float64, unit string) string {
	label, ok := unitLabels[unit]
	if !ok {
		label = unit
	}
	return strings.TrimSpace(f.printer.Sprintf("%.2f", qty) + " " + label)
}

// Percent renders a fraction such as 0.21 as "21%".
func (f *Formatter) Percent(fraction float64) string {
	return f.printer.Sprintf("%.0f%%", fraction*100)
}

// Currency is a one-shot helper around Formatter.Currency.
func Currency(amount float64, code, locale string) (string, error) {
	f, err := New(locale)
	if err != nil {
		return "", err
	}
	return f.Currency(amount, code)
}

// Quantity is a one-shot helper around Formatter.Quantity.
func Quantity(qty float64, unit, locale string) (string, error) {
	f, err := New(locale)
	if err != nil {
		return "", err
	}
	return f.Quantity(qty, unit), nil
}
