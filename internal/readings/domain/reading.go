package readings

import (
	"strings"
	"time"
)

// ReadingType classifies a metered register.
type ReadingType string

const (
	TypeAnytime        ReadingType = "anytime"
	TypeControlledLoad ReadingType = "controlled load"
	TypeSolar          ReadingType = "solar"
)

// AllTypes lists the known reading types in display order.
func AllTypes() []ReadingType {
	return []ReadingType{TypeAnytime, TypeControlledLoad, TypeSolar}
}

// IsValid reports whether the type is one of the known registers.
func (t ReadingType) IsValid() bool {
	switch t {
	case TypeAnytime, TypeControlledLoad, TypeSolar:
		return true
	}
	return false
}

// ParseReadingType normalizes raw type text and validates it.
func ParseReadingType(raw string) (ReadingType, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	t := ReadingType(normalized)
	if !t.IsValid() {
		return "", ErrUnknownReadingType
	}
	return t, nil
}

// Source tags where a reading came from. Informational only.
type Source string

const (
	SourceBill   Source = "bill"
	SourceManual Source = "manual"
)

// ParseSource normalizes raw source text. Empty input defaults to manual.
func ParseSource(raw string) (Source, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return SourceManual, nil
	}
	s := Source(normalized)
	if s != SourceBill && s != SourceManual {
		return "", ErrUnknownSource
	}
	return s, nil
}

// Reading is one cumulative meter observation.
// Value is the register total in kWh at Date (generation total for solar).
type Reading struct {
	Date   time.Time   `json:"date"`
	Type   ReadingType `json:"type"`
	Value  float64     `json:"value"`
	Source Source      `json:"source"`
}

// OfType returns the subset of readings matching the given type,
// preserving order.
func OfType(set []Reading, t ReadingType) []Reading {
	var result []Reading
	for _, reading := range set {
		if reading.Type == t {
			result = append(result, reading)
		}
	}
	return result
}

// Span returns the first and last dates across the set.
// ok is false for an empty set.
func Span(set []Reading) (first, last time.Time, ok bool) {
	if len(set) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first = set[0].Date
	last = set[0].Date
	for _, reading := range set[1:] {
		if reading.Date.Before(first) {
			first = reading.Date
		}
		if reading.Date.After(last) {
			last = reading.Date
		}
	}
	return first, last, true
}
