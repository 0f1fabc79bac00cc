// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"math"

	"github.com/pdiddy/job-matcher/pkg/types"
)

const (
	// MaxEvidenceLimit is the most evidence terms ever reported per listing.
	MaxEvidenceLimit   = 20
	defaultMaxEvidence = 10
)

// Calibration maps raw cosine similarity into the user-facing band
// [Floor, Ceiling] through a concave power curve.
type Calibration struct {
	Floor       int
	Ceiling     int
	Exponent    float64
	BonusPoints int
	BonusTerms  []string
	MaxEvidence int
}

// NewCalibration converts configuration into a validated Calibration.
// A zero MaxEvidence selects the default of 10.
func NewCalibration(cfg types.CalibrationConfig) (Calibration, error) {
	c := Calibration{
		Floor:       cfg.Floor,
		Ceiling:     cfg.Ceiling,
		Exponent:    cfg.Exponent,
		BonusPoints: cfg.BonusPoints,
		BonusTerms:  append([]string(nil), cfg.BonusTerms...),
		MaxEvidence: cfg.MaxEvidence,
	}
	if c.MaxEvidence == 0 {
		c.MaxEvidence = defaultMaxEvidence
	}
	if err := c.Validate(); err != nil {
		return Calibration{}, err
	}
	return c, nil
}

// Validate checks that the band is well formed and the curve is concave.
func (c Calibration) Validate() error {
	switch {
	case c.Floor < 1:
		return fmt.Errorf("calibration floor %d must be at least 1", c.Floor)
	case c.Ceiling > 100:
		return fmt.Errorf("calibration ceiling %d must not exceed 100", c.Ceiling)
	case c.Floor >= c.Ceiling:
		return fmt.Errorf("calibration floor %d must be below ceiling %d", c.Floor, c.Ceiling)
	case c.Exponent <= 0 || c.Exponent >= 1:
		return fmt.Errorf("calibration exponent %v must be in (0,1)", c.Exponent)
	case c.BonusPoints < 0:
		return fmt.Errorf("calibration bonus %d must not be negative", c.BonusPoints)
	case c.MaxEvidence < 1 || c.MaxEvidence > MaxEvidenceLimit:
		return fmt.Errorf("max evidence %d must be in [1,%d]", c.MaxEvidence, MaxEvidenceLimit)
	}
	return nil
}

// Apply returns round(Floor + (Ceiling-Floor)*raw^Exponent), plus
// BonusPoints when bonus is set, clamped to [Floor, Ceiling].
func (c Calibration) Apply(raw float64, bonus bool) int {
	raw = clamp01(raw)
	v := float64(c.Floor) + float64(c.Ceiling-c.Floor)*math.Pow(raw, c.Exponent)
	s := int(math.Round(v))
	if bonus {
		s += c.BonusPoints
	}
	if s < c.Floor {
		return c.Floor
	}
	if s > c.Ceiling {
		return c.Ceiling
	}
	return s
}
