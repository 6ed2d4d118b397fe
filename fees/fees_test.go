package fees_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"payment-submitter/fees"
)

func TestFee_UsesTableRate(t *testing.T) {
	table := fees.NewTable(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.029),
	})
	calc := fees.NewCalculator(table)

	fee := calc.Fee(decimal.NewFromFloat(100.00), "USD")

	require.True(t, fee.Equal(decimal.NewFromFloat(2.90)), "got %s", fee)
}

func TestFee_RoundsHalfAwayFromZero(t *testing.T) {
	table := fees.NewTable(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.01),
	})
	calc := fees.NewCalculator(table)

	// 100.005 * 0.01 = 1.00005 -> 1.00; 150.5 * 0.01 = 1.505 -> 1.51,
	// where banker's rounding would give 1.50.
	fee := calc.Fee(decimal.NewFromFloat(100.005), "USD")
	require.True(t, fee.Equal(decimal.NewFromFloat(1.00)), "got %s", fee)

	fee = calc.Fee(decimal.NewFromFloat(150.5), "USD")
	require.True(t, fee.Equal(decimal.NewFromFloat(1.51)), "got %s", fee)
}

func TestFee_UnknownCurrencyFallsBackToDefaultRate(t *testing.T) {
	calc := fees.NewCalculator(fees.NewTable(nil))

	fee := calc.Fee(decimal.NewFromFloat(200.00), "XYZ")

	require.True(t, fee.Equal(decimal.NewFromFloat(6.00)), "got %s", fee)
}

func TestFee_NilTableAllowed(t *testing.T) {
	calc := fees.NewCalculator(nil)

	fee := calc.Fee(decimal.NewFromFloat(100.00), "USD")

	require.True(t, fee.Equal(decimal.NewFromFloat(3.00)), "got %s", fee)
}

func TestTotal_AddsFeeToAmount(t *testing.T) {
	table := fees.NewTable(map[string]decimal.Decimal{
		"EUR": decimal.NewFromFloat(0.025),
	})
	calc := fees.NewCalculator(table)

	total := calc.Total(decimal.NewFromFloat(100.00), "EUR")

	require.True(t, total.Equal(decimal.NewFromFloat(102.50)), "got %s", total)
}

func TestTable_CopiesRatesOnConstruction(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.029),
	}
	table := fees.NewTable(rates)

	rates["USD"] = decimal.NewFromFloat(0.9)

	rate, ok := table.Lookup("USD")
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.NewFromFloat(0.029)))
}
