package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_KeepsScale(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1500.000", "1500.000"},
		{"720.50", "720.50"},
		{"0.00", "0.00"},
		{"42", "42"},
	}

	for _, tc := range cases {
		a := NewAmount(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, a.String())

		data, err := json.Marshal(a)
		require.NoError(t, err)
		assert.Equal(t, `"`+tc.want+`"`, string(data))

		// The scale survives a JSON round trip, as it does through a cache entry
		var back Amount
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tc.want, back.String())
	}
}
