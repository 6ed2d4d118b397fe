package fees

import "github.com/shopspring/decimal"

// DefaultRate is applied when a currency has no entry in the table.
// Unknown currencies degrade to this conservative rate instead of failing.
var DefaultRate = decimal.NewFromFloat(0.03)

// Table is an immutable mapping from upper-case currency code to a fee
// rate in [0,1). It is built once and safe for concurrent reads.
type Table struct {
	rates map[string]decimal.Decimal
}

// NewTable copies the given rates into an immutable table.
func NewTable(rates map[string]decimal.Decimal) *Table {
	copied := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		copied[code] = rate
	}
	return &Table{rates: copied}
}

// Lookup returns the fee rate for a normalized currency code.
func (t *Table) Lookup(currency string) (decimal.Decimal, bool) {
	rate, ok := t.rates[currency]
	return rate, ok
}

// Calculator computes transaction fees from a rate table.
type Calculator struct {
	table *Table
}

// NewCalculator creates a fee calculator. A nil table is allowed and
// makes every currency fall back to DefaultRate.
func NewCalculator(table *Table) *Calculator {
	if table == nil {
		table = NewTable(nil)
	}
	return &Calculator{table: table}
}

// Fee returns the fee for the given amount and normalized currency,
// rounded to 2 decimal places half away from zero. Banker's rounding is
// deliberately not used: totals must match standard currency rounding.
func (c *Calculator) Fee(amount decimal.Decimal, currency string) decimal.Decimal {
	rate, ok := c.table.Lookup(currency)
	if !ok {
		rate = DefaultRate
	}
	return amount.Mul(rate).Round(2)
}

// Total returns amount plus its fee.
func (c *Calculator) Total(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Add(c.Fee(amount, currency))
}
