package model

import (
    "database/sql/driver"
    "fmt"
    "strings"
    "time"
)

// DateLayout is the wire and column format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day in UTC.  It maps to a MySQL DATE column and to a
// "YYYY-MM-DD" JSON string.
type Date struct{ time.Time }

// NewDate truncates t to midnight UTC.
func NewDate(t time.Time) Date {
    y, m, d := t.UTC().Date()
    return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
    t, err := time.Parse(DateLayout, strings.TrimSpace(s))
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
    }
    return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
    if d.IsZero() {
        return []byte("null"), nil
    }
    return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
    s := strings.Trim(string(b), `"`)
    if s == "" || s == "null" {
        *d = Date{}
        return nil
    }
    // Accept full timestamps from clients that serialise JS Date objects.
    if len(s) > len(DateLayout) {
        if t, err := time.Parse(time.RFC3339, s); err == nil {
            *d = NewDate(t)
            return nil
        }
    }
    v, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = v
    return nil
}

// Value stores the date as a time at midnight UTC.
func (d Date) Value() (driver.Value, error) { return d.Time, nil }

// Scan accepts time.Time (parseTime=true) or the raw "YYYY-MM-DD" bytes.
func (d *Date) Scan(src any) error {
    switch v := src.(type) {
    case time.Time:
        *d = NewDate(v)
    case []byte:
        return d.scanString(string(v))
    case string:
        return d.scanString(v)
    case nil:
        *d = Date{}
    default:
        return fmt.Errorf("cannot scan %T into Date", src)
    }
    return nil
}

func (d *Date) scanString(s string) error {
    v, err := ParseDate(s[:min(len(s), len(DateLayout))])
    if err != nil {
        return err
    }
    *d = v
    return nil
}
