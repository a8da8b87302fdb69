package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const BaseCurrency = "USD"

var ErrInvalidSnapshot = errors.New("invalid rate snapshot")

type RateSnapshot struct {
	BaseCurrency string    `json:"base_currency" bson:"base_currency"`
	Rates        Rates     `json:"rates" bson:"rates"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Rates maps a currency code to units of that currency per one USD.
type Rates map[string]float64

// Value stores Rates in a JSONB column.
func (r Rates) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *Rates) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = make(Rates)
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into Rates", value)
	}
}

// Clone returns a copy that callers may mutate freely.
func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Validate checks that the snapshot can be used for conversions.
func (s *RateSnapshot) Validate() error {
	if s == nil || len(s.Rates) == 0 {
		return fmt.Errorf("%w: no rates", ErrInvalidSnapshot)
	}
	for code, v := range s.Rates {
		if !(v > 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidSnapshot, code, v)
		}
	}
	if usd, ok := s.Rates[BaseCurrency]; ok && usd != 1 {
		return fmt.Errorf("%w: USD=%v", ErrInvalidSnapshot, usd)
	}
	return nil
}
