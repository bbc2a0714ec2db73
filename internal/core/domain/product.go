package domain

import "math"

// Product is a catalogue entry. Price is kept rounded to cents.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"                  validate:"required,min=1"`
	Price       float64 `json:"price"                 validate:"gt=0"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// RoundToCent rounds half away from zero to two decimals.
func RoundToCent(v float64) float64 {
	return math.Round(v*100) / 100
}
