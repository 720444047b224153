// Package sentiment provides polarity engines for free-text survey answers.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Engine scores text polarity in [-1, 1].
type Engine interface {
	Available() bool
	Polarity(text string) float64
	Name() string
}

// Unavailable stands in when sentiment scoring is switched off.
type Unavailable struct{}

func (Unavailable) Available() bool         { return false }
func (Unavailable) Polarity(string) float64 { return 0 }
func (Unavailable) Name() string            { return "unavailable" }

// Vader scores text with the VADER compound score.
type Vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVader loads the VADER lexicon.
func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Available() bool { return true }
func (v *Vader) Name() string    { return "vader" }

// Polarity returns the compound score, 0 for blank text.
func (v *Vader) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	c := v.sia.PolarityScores(text).Compound
	switch {
	case c > 1:
		return 1
	case c < -1:
		return -1
	}
	return c
}

// New returns the VADER engine when enabled, otherwise Unavailable.
func New(enabled bool) Engine {
	if !enabled {
		return Unavailable{}
	}
	return NewVader()
}
