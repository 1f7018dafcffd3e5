package format

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"code.cloudfoundry.org/bytefmt"
	"github.com/gertd/go-pluralize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when a locale is empty or unparseable.
const DefaultLocale = "en-US"

var pluralizer = sync.OnceValue(pluralize.NewClient)

// Pluralize returns word in the form that matches count. With inclusive
// set the count is prefixed, as in "3 alerts".
func Pluralize(word string, count int, inclusive bool) string {
	return pluralizer().Pluralize(word, count, inclusive)
}

// Plural returns the plural form of word.
func Plural(word string) string {
	return pluralizer().Plural(word)
}

// Singular returns the singular form of word.
func Singular(word string) string {
	return pluralizer().Singular(word)
}

func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return message.NewPrinter(tag)
}

// Currency formats amount in the given locale and ISO 4217 currency,
// e.g. "$1,234.50" or "-€12.00". Empty arguments default to en-US and USD.
func Currency(amount float64, locale, code string) (string, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("currency %q: %w", code, err)
	}

	p := printer(locale)
	scale, _ := currency.Standard.Rounding(unit)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	sym := p.Sprint(currency.Symbol(unit))
	digits := p.Sprint(number.Decimal(amount, number.Scale(scale)))
	return sign + sym + digits, nil
}

// Prettify groups the digits of value, keeping up to three fraction
// digits: 1234567.891 becomes "1,234,567.891".
func Prettify(value float64) string {
	return printer(DefaultLocale).Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
}

var compactUnits = []string{"", "K", "M", "B", "T"}

// Abbreviate writes value in compact form with at most one fraction
// digit: 1500 becomes "1.5K" and 2300000 becomes "2.3M".
func Abbreviate(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprint(value)
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	exp := 0
	for exp < len(compactUnits)-1 && value >= 1000 {
		value /= 1000
		exp++
	}
	value = math.Round(value*10) / 10
	if value >= 1000 && exp < len(compactUnits)-1 {
		value /= 1000
		exp++
	}

	p := printer(DefaultLocale)
	return sign + p.Sprint(number.Decimal(value, number.MaxFractionDigits(1))) + compactUnits[exp]
}

// BytesOptions configures Bytes.
type BytesOptions struct {
	// Decimals is the maximum number of fraction digits. Default is 2.
	Decimals int

	// FixedDecimals keeps trailing zeros.
	FixedDecimals bool

	// UnitSeparator goes between the number and the unit.
	UnitSeparator string

	// ThousandsSeparator groups the integer digits when set.
	ThousandsSeparator string
}

var byteUnits = []struct {
	name string
	size float64
}{
	{"PB", 1 << 50},
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// Bytes formats a byte count with binary units: 1024 becomes "1KB" and
// 1536 becomes "1.5KB". Non-finite values format as "".
func Bytes(value float64, opts *BytesOptions) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	o := BytesOptions{Decimals: 2}
	if opts != nil {
		o = *opts
		if o.Decimals < 0 {
			o.Decimals = 2
		}
	}

	unit, div := "B", 1.0
	mag := math.Abs(value)
	for _, u := range byteUnits {
		if mag >= u.size {
			unit, div = u.name, u.size
			break
		}
	}

	str := fmt.Sprintf("%.*f", o.Decimals, value/div)
	if !o.FixedDecimals && strings.Contains(str, ".") {
		str = strings.TrimRight(strings.TrimRight(str, "0"), ".")
	}
	if o.ThousandsSeparator != "" {
		str = groupThousands(str, o.ThousandsSeparator)
	}
	return str + o.UnitSeparator + unit
}

func groupThousands(s, sep string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

// ShortBytes formats n the compact way, as in "1.5M".
func ShortBytes(n uint64) string {
	return bytefmt.ByteSize(n)
}

// ParseBytes parses sizes such as "512K", "1.5MB" or "2GiB" into bytes.
func ParseBytes(s string) (uint64, error) {
	n, err := bytefmt.ToBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", s, err)
	}
	return n, nil
}
