package models

import "github.com/shopspring/decimal"

// MetricScore is one rubric dimension's result.
type MetricScore struct {
	Score  float64 `json:"score"`
	Grade  string  `json:"grade"`
	Weight string  `json:"weight"`
}

// PriceAnalysis compares the agreed price against the seller's anchors.
type PriceAnalysis struct {
	Final              decimal.Decimal `json:"final"`
	Opening            decimal.Decimal `json:"opening"`
	Target             decimal.Decimal `json:"target"`
	Reduction          decimal.Decimal `json:"reduction"`
	ReductionPct       string          `json:"reduction_pct"`
	DistanceFromTarget decimal.Decimal `json:"distance_from_target"`
	BeatTarget         bool            `json:"beat_target"`
}

// DeliveryAnalysis compares the agreed delivery time against the seller's anchors.
type DeliveryAnalysis struct {
	Final              int    `json:"final"`
	Opening            int    `json:"opening"`
	Target             int    `json:"target"`
	Reduction          int    `json:"reduction"`
	ReductionPct       string `json:"reduction_pct"`
	DistanceFromTarget int    `json:"distance_from_target"`
	BeatTarget         bool   `json:"beat_target"`
}

// NegotiationAnalysis is the per-deal sub-report attached to an evaluation.
type NegotiationAnalysis struct {
	PriceAnalysis    *PriceAnalysis    `json:"price_analysis,omitempty"`
	DeliveryAnalysis *DeliveryAnalysis `json:"delivery_analysis,omitempty"`
	Volume           *int              `json:"volume,omitempty"`
	Rounds           int               `json:"rounds"`
}

// EvaluationResult is the full scored report for a finished negotiation.
// Derived from transcript + parameters + agreed terms and never mutated.
type EvaluationResult struct {
	OverallScore float64                `json:"overall_score"`
	OverallGrade string                 `json:"overall_grade"`
	Metrics      map[string]MetricScore `json:"metrics"`
	Analysis     NegotiationAnalysis    `json:"negotiation_analysis"`
	AgreedTerms  Terms                  `json:"agreed_terms"`
	Rounds       int                    `json:"negotiation_rounds"`
	Feedback     string                 `json:"feedback"`
}
