package models

import (
	"fmt"
	"time"
)

type MatchLevel string

const (
	MatchOriginal MatchLevel = "Original"
	MatchPartial  MatchLevel = "Partial Match"
	MatchHigh     MatchLevel = "High Match"
)

// Rank orders match levels: Original < Partial Match < High Match
func (l MatchLevel) Rank() int {
	switch l {
	case MatchHigh:
		return 2
	case MatchPartial:
		return 1
	default:
		return 0
	}
}

type TierName string

const (
	TierOriginal TierName = "original"
	TierPartial  TierName = "partial"
	TierHigh     TierName = "high"
)

func ParseTierName(s string) (TierName, error) {
	switch TierName(s) {
	case TierOriginal, TierPartial, TierHigh:
		return TierName(s), nil
	}
	return "", fmt.Errorf("%w: unknown threshold tier %q", ErrInvalidInput, s)
}

// contiguous tiers may differ by one score step at their shared edge
const tierGap = 0.01 + 1e-9

// Weights combine the three similarity metrics into one score
type Weights struct {
	Semantic   float64 `bson:"semantic_weight" json:"semantic_weight"`
	Structural float64 `bson:"structural_weight" json:"structural_weight"`
	Hash       float64 `bson:"hash_weight" json:"hash_weight"`
}

func DefaultWeights() Weights {
	return Weights{Semantic: 0.40, Structural: 0.30, Hash: 0.30}
}

func (w Weights) Sum() float64 {
	return w.Semantic + w.Structural + w.Hash
}

// Tier is one score range of the threshold configuration
type Tier struct {
	Name      TierName  `bson:"_id" json:"threshold_type"`
	MinScore  float64   `bson:"min_score" json:"min_score"`
	MaxScore  float64   `bson:"max_score" json:"max_score"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	Weights   `bson:",inline"`
}

// ThresholdConfig is an immutable snapshot of the three tiers.
// Updates build a new value with WithTier.
type ThresholdConfig struct {
	Original Tier `json:"original"`
	Partial  Tier `json:"partial"`
	High     Tier `json:"high"`
}

func DefaultThresholds() ThresholdConfig {
	w := DefaultWeights()
	return ThresholdConfig{
		Original: Tier{Name: TierOriginal, MinScore: 0.00, MaxScore: 0.29, Weights: w},
		Partial:  Tier{Name: TierPartial, MinScore: 0.30, MaxScore: 0.69, Weights: w},
		High:     Tier{Name: TierHigh, MinScore: 0.70, MaxScore: 1.00, Weights: w},
	}
}

// Tiers returns the tiers in ascending score order
func (c ThresholdConfig) Tiers() []Tier {
	return []Tier{c.Original, c.Partial, c.High}
}

func (c ThresholdConfig) Tier(name TierName) (Tier, bool) {
	switch name {
	case TierOriginal:
		return c.Original, true
	case TierPartial:
		return c.Partial, true
	case TierHigh:
		return c.High, true
	}
	return Tier{}, false
}

// WithTier returns a copy of c with one tier replaced
func (c ThresholdConfig) WithTier(t Tier) ThresholdConfig {
	switch t.Name {
	case TierOriginal:
		c.Original = t
	case TierPartial:
		c.Partial = t
	case TierHigh:
		c.High = t
	}
	return c
}

// ScoringWeights is the single weight triple applied to every comparison:
// the first tier from High down to Original with a positive weight sum.
// Weight edits are written to every tier so the tiers normally agree.
func (c ThresholdConfig) ScoringWeights() Weights {
	for _, t := range []Tier{c.High, c.Partial, c.Original} {
		if t.Weights.Sum() > 0 {
			return t.Weights
		}
	}
	return DefaultWeights()
}

// Validate checks that the tier ranges are ordered, contiguous and cover [0, 1]
func (c ThresholdConfig) Validate() error {
	tiers := c.Tiers()
	for _, t := range tiers {
		if t.MinScore < 0 || t.MaxScore > 1 || t.MinScore > t.MaxScore {
			return fmt.Errorf("%w: tier %s range [%.2f, %.2f] is out of bounds", ErrInvalidInput, t.Name, t.MinScore, t.MaxScore)
		}
		if t.Weights.Semantic < 0 || t.Weights.Structural < 0 || t.Weights.Hash < 0 {
			return fmt.Errorf("%w: tier %s has a negative weight", ErrInvalidInput, t.Name)
		}
	}

	if c.Original.MinScore != 0 {
		return fmt.Errorf("%w: original tier must start at 0", ErrInvalidInput)
	}
	if c.High.MaxScore != 1 {
		return fmt.Errorf("%w: high tier must end at 1", ErrInvalidInput)
	}

	for i := 1; i < len(tiers); i++ {
		prev, next := tiers[i-1], tiers[i]
		if next.MinScore <= prev.MaxScore {
			return fmt.Errorf("%w: tiers %s and %s overlap", ErrInvalidInput, prev.Name, next.Name)
		}
		if next.MinScore-prev.MaxScore > tierGap {
			return fmt.Errorf("%w: gap between tiers %s and %s", ErrInvalidInput, prev.Name, next.Name)
		}
	}

	return nil
}

// TierUpdate is a partial tier edit; nil fields keep their current value
type TierUpdate struct {
	MinScore         *float64 `json:"min_score"`
	MaxScore         *float64 `json:"max_score"`
	SemanticWeight   *float64 `json:"semantic_weight"`
	StructuralWeight *float64 `json:"structural_weight"`
	HashWeight       *float64 `json:"hash_weight"`
}

// Apply returns t with the update's set fields copied over
func (u TierUpdate) Apply(t Tier) Tier {
	if u.MinScore != nil {
		t.MinScore = *u.MinScore
	}
	if u.MaxScore != nil {
		t.MaxScore = *u.MaxScore
	}
	if u.SemanticWeight != nil {
		t.Semantic = *u.SemanticWeight
	}
	if u.StructuralWeight != nil {
		t.Structural = *u.StructuralWeight
	}
	if u.HashWeight != nil {
		t.Hash = *u.HashWeight
	}
	return t
}

// ChangesWeights reports whether the update sets any scoring weight
func (u TierUpdate) ChangesWeights() bool {
	return u.SemanticWeight != nil || u.StructuralWeight != nil || u.HashWeight != nil
}
