package format

import (
	"testing"
	"time"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		word      string
		count     int
		inclusive bool
		want      string
	}{
		{"alert", 1, false, "alert"},
		{"alert", 3, false, "alerts"},
		{"alert", 3, true, "3 alerts"},
		{"alert", 0, true, "0 alerts"},
		{"person", 2, false, "people"},
		{"policy", 1, true, "1 policy"},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.word, tt.count, tt.inclusive); got != tt.want {
			t.Errorf("Pluralize(%q, %d, %v) = %q, want %q", tt.word, tt.count, tt.inclusive, got, tt.want)
		}
	}

	if Plural("policy") != "policies" || Singular("clusters") != "cluster" {
		t.Errorf("Plural/Singular = %q/%q", Plural("policy"), Singular("clusters"))
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		locale string
		code   string
		want   string
	}{
		{1234.5, "", "", "$1,234.50"},
		{0, "en-US", "USD", "$0.00"},
		{-12, "en-US", "EUR", "-€12.00"},
		{1000000, "en-US", "USD", "$1,000,000.00"},
	}
	for _, tt := range tests {
		got, err := Currency(tt.amount, tt.locale, tt.code)
		if err != nil {
			t.Fatalf("Currency(%v) failed: %v", tt.amount, err)
		}
		if got != tt.want {
			t.Errorf("Currency(%v, %q, %q) = %q, want %q", tt.amount, tt.locale, tt.code, got, tt.want)
		}
	}

	if _, err := Currency(1, "en-US", "not-a-code"); err == nil {
		t.Error("Currency() should reject an unknown currency code")
	}
}

func TestPrettify(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234567.891, "1,234,567.891"},
		{1000.5, "1,000.5"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := Prettify(tt.in); got != tt.want {
			t.Errorf("Prettify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{-2300, "-2.3K"},
		{1250000, "1.3M"},
		{999950, "1M"},
		{3e9, "3B"},
		{7.25e12, "7.3T"},
	}
	for _, tt := range tests {
		if got := Abbreviate(tt.in); got != tt.want {
			t.Errorf("Abbreviate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		opts *BytesOptions
		want string
	}{
		{"zero", 0, nil, "0B"},
		{"bytes", 1000, nil, "1000B"},
		{"one kb", 1024, nil, "1KB"},
		{"fraction", 1536, nil, "1.5KB"},
		{"negative", -1024, nil, "-1KB"},
		{"gb rounded", 1.256 * (1 << 30), nil, "1.26GB"},
		{"fixed", 1024, &BytesOptions{Decimals: 2, FixedDecimals: true}, "1.00KB"},
		{"unit separator", 1024, &BytesOptions{Decimals: 2, UnitSeparator: " "}, "1 KB"},
		{"thousands", 1000, &BytesOptions{Decimals: 2, ThousandsSeparator: ","}, "1,000B"},
		{"no decimals", 1536, &BytesOptions{Decimals: 0}, "2KB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bytes(tt.in, tt.opts); got != tt.want {
				t.Errorf("Bytes(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortAndParseBytes(t *testing.T) {
	if got := ShortBytes(1536); got != "1.5K" {
		t.Errorf("ShortBytes(1536) = %q", got)
	}
	n, err := ParseBytes("512K")
	if err != nil || n != 512*1024 {
		t.Errorf("ParseBytes(512K) = %d, %v", n, err)
	}
	if _, err := ParseBytes("lots"); err == nil {
		t.Error("ParseBytes(lots) should fail")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "a few seconds ago"},
		{10 * time.Second, "a few seconds ago"},
		{50 * time.Second, "a minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{50 * time.Minute, "an hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{30 * time.Hour, "a day ago"},
		{5 * day, "5 days ago"},
		{30 * day, "a month ago"},
		{90 * day, "3 months ago"},
		{400 * day, "a year ago"},
		{3 * 365 * day, "3 years ago"},
		{-2 * day, "in 2 days"},
		{-10 * time.Second, "in a few seconds"},
	}
	for _, tt := range tests {
		if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestInUserTimezone(t *testing.T) {
	ts := time.Date(1986, 9, 4, 20, 30, 0, 0, time.UTC)
	est := time.FixedZone("EST", -5*3600)

	if got := InUserTimezone(ts, est); got != "Thu, Sep 4, 1986 3:30 PM EST" {
		t.Errorf("InUserTimezone() = %q", got)
	}
	if got := InUserTimezone(time.Time{}, est); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	if got := FormatIn(ts, time.UTC, time.DateOnly); got != "1986-09-04" {
		t.Errorf("FormatIn() = %q", got)
	}
}
