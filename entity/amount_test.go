package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", FormatAmount(1250))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "1.00", FormatAmount(100))
	assert.Equal(t, "-12.50", FormatAmount(-1250))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12.50", 1250},
		{"12.5", 1250},
		{"12", 1200},
		{".5", 50},
		{"0.05", 5},
		{"-3.07", -307},
		{" 7.00 ", 700},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseAmountRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1,50", "1.2.3"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}
