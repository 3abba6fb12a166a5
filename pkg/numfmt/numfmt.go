// Package numfmt formatea precios y cantidades según el idioma de la consola.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter envuelve un message.Printer de x/text.
type Formatter struct {
	p *message.Printer
}

// New construye un Formatter para el tag indicado.
func New(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Default usa español latinoamericano.
func Default() *Formatter {
	return New(language.LatinAmericanSpanish)
}

// Price formatea un precio con símbolo y dos decimales fijos.
func (f *Formatter) Price(d decimal.Decimal) string {
	return "$" + f.p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Int formatea un entero con separador de miles.
func (f *Formatter) Int(n int) string {
	return f.p.Sprint(number.Decimal(n))
}

// Amount formatea un valor de gráfico con hasta un decimal.
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(1)))
}

// Percent formatea una fracción (0.8) como porcentaje ("80%").
func (f *Formatter) Percent(d decimal.Decimal) string {
	return f.p.Sprint(number.Percent(d.InexactFloat64(), number.MaxFractionDigits(1)))
}
