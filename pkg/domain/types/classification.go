package types

import "fmt"

// Classification distinguishes a risk with negative consequences from one
// with positive consequences (an opportunity). It is accepted by the
// scoring calculator and threaded through evaluations, but does not branch
// the scoring formula.
type Classification string

const (
	ClassificationNegative Classification = "negative"
	ClassificationPositive Classification = "positive"
)

// IsValid checks if the classification is valid
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationNegative, ClassificationPositive:
		return true
	default:
		return false
	}
}

// Normalize returns the classification, treating empty as negative
func (c Classification) Normalize() Classification {
	if c == "" {
		return ClassificationNegative
	}
	return c
}

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}

// ParseClassification parses a string into a Classification
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid classification: %s", s)
	}
	return c, nil
}
