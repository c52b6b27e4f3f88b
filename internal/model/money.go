package model

import (
    "bytes"
    "fmt"
    "math"
    "strconv"
)

// Money is an amount in cents.  It is stored as an integer column and
// rendered in JSON as a decimal number with two fractional digits, so a
// room priced at 199 travels as 199.00 and is persisted as 19900.
type Money int64

// FromFloat converts a decimal amount (e.g. 199.5) to cents, rounding half away from zero.
func FromFloat(f float64) Money { return Money(math.Round(f * 100)) }

// Float returns the decimal amount.
func (m Money) Float() float64 { return float64(m) / 100 }

// Mul multiplies the amount by a whole quantity (nights, tickets).
func (m Money) Mul(n int) Money { return m * Money(n) }

func (m Money) String() string { return strconv.FormatFloat(m.Float(), 'f', 2, 64) }

func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

func (m *Money) UnmarshalJSON(b []byte) error {
    b = bytes.Trim(b, `"`)
    if len(b) == 0 || string(b) == "null" {
        *m = 0
        return nil
    }
    f, err := strconv.ParseFloat(string(b), 64)
    if err != nil {
        return fmt.Errorf("invalid amount %q", b)
    }
    *m = FromFloat(f)
    return nil
}
