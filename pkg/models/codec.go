package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The store keeps skills, availability and performance data as JSON text
// columns. These wrapper types are the only place that JSON is decoded, so
// every defaulting rule (nil slice -> empty, absent availability ->
// unavailable) is applied exactly once instead of at each call site.

// StringList is a JSON-encoded list of tags or ids.
type StringList []string

// Scan implements sql.Scanner. NULL and empty columns decode to an empty
// list rather than nil-propagating into the scoring code.
func (l *StringList) Scan(value any) error {
	*l = StringList{}
	data, err := rawBytes(value)
	if err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// AvailabilityMap maps weekdays to availability windows. Days without an
// entry are simply unavailable.
type AvailabilityMap map[Weekday]TimeWindow

// Scan implements sql.Scanner.
func (m *AvailabilityMap) Scan(value any) error {
	*m = AvailabilityMap{}
	data, err := rawBytes(value)
	if err != nil {
		return fmt.Errorf("availability map: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, m)
}

// Value implements driver.Valuer.
func (m AvailabilityMap) Value() (driver.Value, error) {
	if m == nil {
		m = AvailabilityMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (p *PerformanceReport) Scan(value any) error {
	*p = PerformanceReport{}
	data, err := rawBytes(value)
	if err != nil {
		return fmt.Errorf("performance report: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, p)
}

// Value implements driver.Valuer.
func (p PerformanceReport) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func rawBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
