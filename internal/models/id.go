package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID is an identifier the backend may emit either as a JSON string or as a
// JSON number. It is always handled as a string on this side.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Price is a numeric amount. Django REST serializes decimals as strings,
// so both "12.50" and 12.5 are accepted.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("price: %q is not a finite number", s)
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(f)
	return nil
}

// String formats the price with two decimals, the way the cards display it.
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}
