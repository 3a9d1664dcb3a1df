package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"45,00", "45"},
		{"-50,00", "-50"},
		{"1234,56", "1234.56"},
		{"12.345.678,90", "12345678.9"},
		{" 7,10 ", "7.1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBRL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseBRL_Malformed(t *testing.T) {
	for _, in := range []string{"", "12,5", "1,234.56", "12.34,00", "abc", "--1,00"} {
		_, err := ParseBRL(in)
		assert.ErrorIs(t, err, ErrMalformedAmount, "input %q", in)
	}
}

func TestBuilder(t *testing.T) {
	tx, err := NewTransaction("ACADEMIA X").
		SetDate("10/01").
		SetInstallment("02/03").
		SetValueFromFatura("80,00").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "10/01", tx.Date())
	assert.Equal(t, "ACADEMIA X", tx.Merchant())
	assert.Equal(t, "02/03", tx.Installment())
	assert.Equal(t, "80,00", tx.RawAmount())
	assert.Equal(t, "80.00", tx.Amount().StringFixed(2))
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewTransaction("LOJA").SetDate("1/2").SetValueFromFatura("1,00").Build()
	assert.ErrorContains(t, err, "invalid date")

	_, err = NewTransaction("LOJA").SetDate("01/02").SetValueFromFatura("1.00").Build()
	assert.ErrorIs(t, err, ErrMalformedAmount)

	_, err = NewTransaction("LOJA").SetValueFromFatura("1,00").Build()
	assert.ErrorContains(t, err, "no date")
}
