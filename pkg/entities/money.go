package entities

import "fmt"

// Money is an amount in cents. Whole-dollar bets paid at 3:2 stay exact.
type Money int64

// Dollars converts a whole-dollar amount to Money
func Dollars(d int64) Money {
	return Money(d * 100)
}

// MulRatio returns m * num / den, truncated toward zero
func (m Money) MulRatio(num, den int64) Money {
	return Money(int64(m) * num / den)
}

// String formats the amount as dollars, e.g. "$62.50" or "$100"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v%100 == 0 {
		return fmt.Sprintf("%s$%d", sign, v/100)
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
