package coerce

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"thousands separator", "1,234.50", 1234.5},
		{"currency marker", "RM 500", 500},
		{"currency marker without space", "RM1,000.25", 1000.25},
		{"lone dash sentinel", "-", 0},
		{"dash with spaces", "  -  ", 0},
		{"garbage", "garbage", 0},
		{"empty", "", 0},
		{"negative", "-12.5", -12.5},
		{"plain integer", "42", 42},
		{"exponent", "1e3", 1000},
		{"nan text", "NaN", 0},
		{"nil", nil, 0},
		{"float passthrough", 99.9, 99.9},
		{"int passthrough", 7, 7},
		{"NaN float", math.NaN(), 0},
		{"Inf float", math.Inf(1), 0},
		{"decimal", decimal.RequireFromString("10.75"), 10.75},
		{"unsupported type", struct{}{}, 0},
		{"huge exponent", "1e999", 0},
		{"enormous exponent", "1e999999999", 0},
		{"tiny exponent", "1e-999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.in)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestNumber_NeverPanics(t *testing.T) {
	inputs := []any{
		"", " ", ",", "RM", "RMRM", "--", "1-2", "1.2.3", "١٢٣", "\x00", "+",
		"RM -", "(100)", "1,2,3,4", "e", "0x10", []byte("12"), true, time.Now(),
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := Number(in)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestParseNumber_Errors(t *testing.T) {
	_, err := ParseNumber("TBC")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotNumeric)

	f, err := ParseNumber("-")
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)
}

func TestPolicy(t *testing.T) {
	tests := []struct {
		name         string
		policy       Policy
		in           any
		want         float64
		wantReplaced bool
		wantErr      bool
	}{
		{"zero replaces garbage", PolicyZero, "oops", 0, true, false},
		{"zero keeps valid", PolicyZero, "RM 1,000", 1000, false, false},
		{"zero does not count empty cells", PolicyZero, "", 0, false, false},
		{"zero does not count dash", PolicyZero, "-", 0, false, false},
		{"strict fails garbage", PolicyStrict, "oops", 0, false, true},
		{"strict keeps valid", PolicyStrict, "RM 1,000", 1000, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, replaced, err := tt.policy.Apply(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotNumeric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.wantReplaced, replaced)
		})
	}
}

func FuzzNumber(f *testing.F) {
	for _, seed := range []string{
		"1,234.50", "RM 500", "-", "garbage", "", "1e999", "NaN", "-Inf",
		"RM -", "(100)", "0x10", "١٢٣", "\x00", "1_000", "  42  ",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		got := Number(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("Number(%q) = %v, want a finite value", in, got)
		}

		parsed, err := ParseNumber(in)
		if err == nil && parsed != got {
			t.Fatalf("Number(%q) = %v, ParseNumber = %v", in, got, parsed)
		}
		if err != nil && got != 0 {
			t.Fatalf("Number(%q) = %v, want 0 for unparseable input", in, got)
		}
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyZero, p)

	p, err = ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	_, err = ParsePolicy("lenient")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	jan15 := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     any
		opts   DateOptions
		want   time.Time
		wantOK bool
	}{
		{"iso", "2026-01-15", DateOptions{}, jan15, true},
		{"iso with time", "2026-01-15 00:00:00", DateOptions{}, jan15, true},
		{"month first by default", "01/15/2026", DateOptions{}, jan15, true},
		{"day first fallback when month is out of range", "15/01/2026", DateOptions{}, jan15, true},
		{"ambiguous day first", "02/01/2026", DateOptions{DayFirst: true}, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"ambiguous month first", "02/01/2026", DateOptions{}, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"named month", "15-Jan-2026", DateOptions{}, jan15, true},
		{"excel serial string", "46037", DateOptions{ExcelSerial: true}, jan15, true},
		{"excel serial float", 46037.0, DateOptions{ExcelSerial: true}, jan15, true},
		{"serial ignored for text sources", "46037", DateOptions{}, time.Time{}, false},
		{"time passthrough", jan15, DateOptions{}, jan15, true},
		{"garbage", "not a date", DateOptions{}, time.Time{}, false},
		{"empty", "", DateOptions{}, time.Time{}, false},
		{"dash", "-", DateOptions{ExcelSerial: true}, time.Time{}, false},
		{"zero time", time.Time{}, DateOptions{}, time.Time{}, false},
		{"nil", nil, DateOptions{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.in, tt.opts)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}
