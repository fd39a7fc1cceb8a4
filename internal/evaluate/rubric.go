package evaluate

import (
	"fmt"
	"math"

	"github.com/TheJegede/Negotiator/internal/config"
)

// Metric names in their fixed evaluation order. The order also breaks ties
// when picking the weakest metric for the feedback recommendation.
const (
	MetricDealQuality     = "deal_quality"
	MetricTradeOff        = "trade_off_strategy"
	MetricProfessionalism = "professionalism"
	MetricProcess         = "process_management"
	MetricCreativity      = "creativity_adaptability"
)

var metricOrder = []string{
	MetricDealQuality,
	MetricTradeOff,
	MetricProfessionalism,
	MetricProcess,
	MetricCreativity,
}

// reductionBand maps a minimum percentage reduction from the opening offer
// to a component score. Bands are tried top-down.
type reductionBand struct {
	MinPct float64
	Score  float64
}

// gradeThreshold maps a minimum overall score to a letter grade.
type gradeThreshold struct {
	Grade string
	Min   float64
}

// Rubric is the scoring configuration: metric weights,
// deal-quality banding, and grade thresholds. The band values have no
// algorithmic derivation; they are course constants and deliberately live
// in one adjustable table instead of hard-coded branches.
type Rubric struct {
	Weights map[string]float64

	AtTargetScore  float64
	ReductionBands []reductionBand
	ReductionFloor float64

	PriceShare    float64
	DeliveryShare float64

	Grades []gradeThreshold
}

// DefaultRubric returns the standard course rubric.
func DefaultRubric() Rubric {
	return Rubric{
		Weights: map[string]float64{
			MetricDealQuality:     0.33,
			MetricTradeOff:        0.28,
			MetricProfessionalism: 0.17,
			MetricProcess:         0.11,
			MetricCreativity:      0.11,
		},
		AtTargetScore: 95,
		ReductionBands: []reductionBand{
			{MinPct: 15, Score: 80},
			{MinPct: 10, Score: 70},
			{MinPct: 5, Score: 50},
		},
		ReductionFloor: 30,
		PriceShare:     0.6,
		DeliveryShare:  0.4,
		Grades: []gradeThreshold{
			{Grade: "A", Min: 90},
			{Grade: "B", Min: 80},
			{Grade: "C", Min: 70},
			{Grade: "D", Min: 60},
			{Grade: "F", Min: 0},
		},
	}
}

// weightSumTolerance absorbs float noise in hand-written config weights.
const weightSumTolerance = 0.01

// RubricFromConfig applies configured weight overrides to the default
// rubric. Unknown metric names are rejected so a typo in the config file
// cannot silently zero a metric, and the resulting weights must be
// non-negative and sum to 1 so overall scores stay within 0-100.
func RubricFromConfig(cfg config.RubricConfig) (Rubric, error) {
	r := DefaultRubric()
	for name, w := range cfg.Weights {
		if _, ok := r.Weights[name]; !ok {
			return Rubric{}, fmt.Errorf("rubric: unknown metric %q", name)
		}
		if w < 0 {
			return Rubric{}, fmt.Errorf("rubric: negative weight %v for %q", w, name)
		}
		r.Weights[name] = w
	}
	sum := 0.0
	for _, w := range r.Weights {
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return Rubric{}, fmt.Errorf("rubric: weights sum to %v, want 1", sum)
	}
	return r, nil
}

// Grade converts a 0-100 score into a letter grade.
func (r Rubric) Grade(score float64) string {
	for _, g := range r.Grades {
		if score >= g.Min {
			return g.Grade
		}
	}
	return "F"
}

// bandScore returns the component score for a percentage reduction from the
// opening offer when the target was not reached.
func (r Rubric) bandScore(reductionPct float64) float64 {
	for _, b := range r.ReductionBands {
		if reductionPct >= b.MinPct {
			return b.Score
		}
	}
	return r.ReductionFloor
}

// weightLabel renders a weight for the report ("33%").
func weightLabel(w float64) string {
	return fmt.Sprintf("%.0f%%", w*100)
}
