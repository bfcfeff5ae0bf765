package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostOf(t *testing.T) {
	items := []JobItem{
		{Category: "CERÁMICA", Type: "Corona", Units: 3, UnitCost: decimal.RequireFromString("120.50")},
		{Category: "ACRÍLICO", Type: "Placa", Units: 1, UnitCost: decimal.NewFromInt(80)},
	}
	assert.True(t, CostOf(items).Equal(decimal.RequireFromString("441.50")))
	assert.True(t, CostOf(nil).IsZero())
}

func TestOrder_Balance(t *testing.T) {
	o := Order{Cost: decimal.NewFromInt(300)}
	assert.True(t, o.Balance().Equal(decimal.NewFromInt(300)))

	o.Payments = []Payment{
		{ID: "p1", Amount: decimal.NewFromInt(100)},
		{ID: "p2", Amount: decimal.RequireFromString("49.99")},
	}
	assert.True(t, o.TotalPaid().Equal(decimal.RequireFromString("149.99")))
	assert.True(t, o.Balance().Equal(decimal.RequireFromString("150.01")))

	assert.Equal(t, 1, o.PaymentIndex("p2"))
	assert.Equal(t, -1, o.PaymentIndex("missing"))
}

func TestOrder_Category(t *testing.T) {
	assert.Equal(t, "", Order{}.Category())
	o := Order{JobItems: []JobItem{{Category: "ZIRCONIA"}, {Category: "ACRÍLICO"}}}
	assert.Equal(t, "ZIRCONIA", o.Category())
}

func TestPrefixForCategory(t *testing.T) {
	cases := map[string]string{
		"PRÓTESIS FIJA":      "PTF",
		"prótesis  fija":     "PTF",
		"Protesis Removible": "PTR",
		"ACRÍLICO":           "ACR",
		"acrilico":           "ACR",
		" Cerámica ":         "CER",
		"METAL PORCELANA":    "MPC",
		"Zirconia":           "ZIR",
		"IMPLANTES":          "IMP",
		"ortodoncia":         "ORT",
		"PROVISIONALES":      "PRV",
		"ALGO DESCONOCIDO":   DefaultOrderPrefix,
		"":                   DefaultOrderPrefix,
	}
	for category, want := range cases {
		assert.Equal(t, want, PrefixForCategory(category), "category %q", category)
	}
}

func TestOrderNumberFormatting(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	key := CounterKey("ACR", at)
	assert.Equal(t, "ACR-25", key)
	assert.Equal(t, "ACR-25-0001", FormatOrderNumber(key, 1))
	assert.Equal(t, "ACR-25-12345", FormatOrderNumber(key, 12345))
	assert.Equal(t, "ORD-05", CounterKey("ORD", time.Date(2105, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseOrderNumber(t *testing.T) {
	key, seq, ok := ParseOrderNumber("PTF-25-0007")
	require.True(t, ok)
	assert.Equal(t, "PTF-25", key)
	assert.Equal(t, int64(7), seq)

	for _, bad := range []string{"", "PTF", "PTF-25", "PTF-25-", "PTF-25-abc", "PTF-25-0000", "A-B-C-0001"} {
		_, _, ok := ParseOrderNumber(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, OrderStatusCompletado.Valid())
	assert.False(t, OrderStatus("Cancelado").Valid())
	assert.True(t, PriorityUrgente.Valid())
	assert.False(t, Priority("Maxima").Valid())
	assert.True(t, RoleOperador.Valid())
	assert.False(t, Role("root").Valid())
}
