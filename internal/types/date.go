package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a date-only value stored in a DATE column and serialized as
// "YYYY-MM-DD" on the wire. The zero value is usable and marshals as
// "0001-01-01". Like FlexUint64, it tolerates the formats clients actually
// send: a date string, a full RFC 3339 timestamp, or null (left at zero).
type Date struct {
	t time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("Date: invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// String returns the "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("Date: expected string or null")
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = Date{t: t}
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("Date: invalid date %q", s)
	}
	*d = Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t.Format(dateLayout))
}

// Value implements the driver.Valuer interface.
func (d Date) Value() (driver.Value, error) {
	return d.t.Format(dateLayout), nil
}

// Scan implements the sql.Scanner interface. Drivers hand back DATE columns
// as time.Time, string or []byte depending on dialect.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{t: time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("Date: cannot scan %T", value)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("Date: cannot scan %q: %w", s, err)
	}
	*d = Date{t: t}
	return nil
}

// GormDataType tells GORM to migrate Date fields as DATE columns.
func (Date) GormDataType() string {
	return "date"
}
