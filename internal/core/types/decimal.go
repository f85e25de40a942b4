// Package types holds value types shared by the domain and storage layers.
package types

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount (device asset value, summary totals).
type Money = decimal.Decimal

// MustMoney parses s and panics on malformed input. For literals and tests.
func MustMoney(s string) Money {
	return decimal.RequireFromString(s)
}

// Sum adds up values; nil means "no value recorded" and is skipped.
func Sum(values ...*Money) Money {
	total := decimal.Zero
	for _, v := range values {
		if v != nil {
			total = total.Add(*v)
		}
	}
	return total
}
