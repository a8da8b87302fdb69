package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates_ValueScan(t *testing.T) {
	in := Rates{"USD": 1, "EUR": 0.92}

	v, err := in.Value()
	require.NoError(t, err)

	var out Rates
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var fromString Rates
	require.NoError(t, fromString.Scan(`{"CNY":7.25}`))
	assert.Equal(t, 7.25, fromString["CNY"])

	var empty Rates
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)

	assert.Error(t, empty.Scan(42))
}

func TestRateSnapshot_Validate(t *testing.T) {
	cases := []struct {
		name    string
		rates   Rates
		wantErr bool
	}{
		{"valid", Rates{"USD": 1, "EUR": 0.92}, false},
		{"valid without usd", Rates{"EUR": 0.92}, false},
		{"empty", Rates{}, true},
		{"zero value", Rates{"USD": 1, "EUR": 0}, true},
		{"negative value", Rates{"EUR": -1}, true},
		{"usd not one", Rates{"USD": 1.1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&RateSnapshot{BaseCurrency: BaseCurrency, Rates: tc.rates}).Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilSnap *RateSnapshot
	assert.ErrorIs(t, nilSnap.Validate(), ErrInvalidSnapshot)
}

func TestRates_CloneIsIndependent(t *testing.T) {
	orig := Rates{"USD": 1}
	c := orig.Clone()
	c["EUR"] = 0.9
	assert.NotContains(t, orig, "EUR")
}
