// Package evaluate converts a finished negotiation transcript plus the
// seller's hidden parameters into a weighted multi-metric grade with
// generated feedback. Evaluation is a pure function of its inputs: the
// same transcript, parameters and agreed terms always produce the same
// report.
package evaluate

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/models"
)

var tradeOffKeywords = []string{
	"if you", "in exchange", "trade", "volume", "order more",
	"larger order", "bulk", "quantity", "conditional", "deal",
	"discount", "lower price if", "faster delivery if",
}

// Red flags cost 10 points per term per message; positive indicators add
// their bonus capped at 100.
var redFlagKeywords = []string{
	"stupid", "ridiculous", "unacceptable", "outrageous", "idiot",
	"demand", "must", "have to", "forced to",
	"lol", "omg", "ur", "gonna",
	"no idea", "don't know", "clueless",
}

var positiveIndicators = []struct {
	Term  string
	Bonus float64
}{
	{"please", 5},
	{"thank", 5},
	{"appreciate", 5},
	{"understand", 3},
	{"reasonable", 3},
	{"flexible", 5},
	{"partnership", 5},
	{"professional", 5},
}

var confirmationKeywords = []string{"confirm", "agree", "deal", "accept", "correct", "agreed"}

var alternativeKeywords = []string{"alternative", "instead", "different", "volume", "terms", "creative"}

// offerTokenRe collects the numeric tokens of a message for the
// creativity metric's distinct-offer analysis.
var offerTokenRe = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)

type Evaluator struct {
	Rubric Rubric
}

func New(rubric Rubric) *Evaluator {
	return &Evaluator{Rubric: rubric}
}

// Evaluate scores the learner's performance. The transcript is read-only;
// agreed may be partially or wholly absent, in which case Deal Quality
// degrades instead of failing (an incomplete negotiation is a valid, if
// poor, state to score).
func (e *Evaluator) Evaluate(history []models.Message, params models.DealParameters, agreed models.Terms) models.EvaluationResult {
	buyerMessages := buyerContents(history)

	scores := map[string]float64{
		MetricDealQuality:     e.scoreDealQuality(params, agreed),
		MetricTradeOff:        e.scoreTradeOffStrategy(buyerMessages),
		MetricProfessionalism: e.scoreProfessionalism(buyerMessages),
		MetricProcess:         e.scoreProcessManagement(buyerMessages),
		MetricCreativity:      e.scoreCreativity(buyerMessages),
	}

	overall := 0.0
	for name, score := range scores {
		overall += score * e.Rubric.Weights[name]
	}
	overall = round1(overall)

	metrics := make(map[string]models.MetricScore, len(scores))
	for name, score := range scores {
		metrics[name] = models.MetricScore{
			Score:  score,
			Grade:  e.Rubric.Grade(score),
			Weight: weightLabel(e.Rubric.Weights[name]),
		}
	}

	return models.EvaluationResult{
		OverallScore: overall,
		OverallGrade: e.Rubric.Grade(overall),
		Metrics:      metrics,
		Analysis:     e.analyze(params, agreed, len(buyerMessages)),
		AgreedTerms:  agreed,
		Rounds:       len(buyerMessages),
		Feedback:     e.feedback(scores, overall),
	}
}

// scoreDealQuality compares the agreed price and delivery against the
// seller's opening and target. Reaching the target earns the top band;
// otherwise the score steps down with the percentage reduction from the
// opening offer. Price counts for 60% and delivery for 40%. An absent
// field contributes nothing, and wholly absent terms score 0.
func (e *Evaluator) scoreDealQuality(params models.DealParameters, agreed models.Terms) float64 {
	if agreed.FieldCount() == 0 {
		return 0
	}

	priceComponent := 0.0
	if agreed.Price != nil {
		final := *agreed.Price
		if final.LessThanOrEqual(params.Price.Target) {
			priceComponent = e.Rubric.AtTargetScore
		} else {
			priceComponent = e.Rubric.bandScore(reductionPct(params.Price.Opening, final))
		}
	}

	deliveryComponent := 0.0
	if agreed.Delivery != nil {
		final := *agreed.Delivery
		if final <= params.Delivery.Target {
			deliveryComponent = e.Rubric.AtTargetScore
		} else {
			pct := 0.0
			if params.Delivery.Opening > 0 {
				pct = float64(params.Delivery.Opening-final) / float64(params.Delivery.Opening) * 100
			}
			deliveryComponent = e.Rubric.bandScore(pct)
		}
	}

	return round1(priceComponent*e.Rubric.PriceShare + deliveryComponent*e.Rubric.DeliveryShare)
}

// scoreTradeOffStrategy counts buyer messages that propose or reference a
// trade-off, at most once per message, and maps the count onto a band
// relative to the number of rounds.
func (e *Evaluator) scoreTradeOffStrategy(buyerMessages []string) float64 {
	count := 0
	for _, msg := range buyerMessages {
		if containsAny(strings.ToLower(msg), tradeOffKeywords) {
			count++
		}
	}

	switch {
	case count == 0:
		return 30
	case count == 1:
		return 50
	case float64(count) <= float64(len(buyerMessages))*0.5:
		return 75
	default:
		return 90
	}
}

// scoreProfessionalism starts from 85, deducts for red-flag language and
// adds capped bonuses for courteous phrasing.
func (e *Evaluator) scoreProfessionalism(buyerMessages []string) float64 {
	score := 85.0
	for _, msg := range buyerMessages {
		lower := strings.ToLower(msg)
		for _, kw := range redFlagKeywords {
			if strings.Contains(lower, kw) {
				score -= 10
			}
		}
	}
	for _, msg := range buyerMessages {
		lower := strings.ToLower(msg)
		for _, ind := range positiveIndicators {
			if strings.Contains(lower, ind.Term) {
				score = math.Min(100, score+ind.Bonus)
			}
		}
	}
	return math.Max(0, round1(score))
}

// scoreProcessManagement rewards explicit confirmations, balanced message
// length, and offers backed by concrete numbers.
func (e *Evaluator) scoreProcessManagement(buyerMessages []string) float64 {
	score := 70.0
	if len(buyerMessages) == 0 {
		return score
	}

	for _, msg := range buyerMessages {
		if containsAny(strings.ToLower(msg), confirmationKeywords) {
			score += 15
			break
		}
	}

	totalWords := 0
	for _, msg := range buyerMessages {
		totalWords += len(strings.Fields(msg))
	}
	avgWords := float64(totalWords) / float64(len(buyerMessages))
	switch {
	case avgWords >= 10 && avgWords <= 40:
		score += 10
	case avgWords > 100:
		score -= 10
	case avgWords < 5:
		score -= 5
	}

	offerCount := 0
	for _, msg := range buyerMessages {
		if strings.Contains(msg, "$") || strings.Contains(strings.ToLower(msg), "day") {
			offerCount++
		}
	}
	if float64(offerCount) >= float64(len(buyerMessages))*0.7 {
		score += 10
	}

	return math.Min(100, math.Max(0, round1(score)))
}

// scoreCreativity measures whether the learner varied their offers or kept
// repeating the same numbers, with a bonus for explicitly trying another
// approach. Fewer than two buyer messages is not enough signal to judge.
func (e *Evaluator) scoreCreativity(buyerMessages []string) float64 {
	if len(buyerMessages) < 2 {
		return 50
	}

	var offerKeys []string
	for _, msg := range buyerMessages {
		matches := offerTokenRe.FindAllStringSubmatch(msg, -1)
		if len(matches) == 0 {
			continue
		}
		tokens := make([]string, 0, len(matches))
		for _, m := range matches {
			tokens = append(tokens, m[1])
		}
		sort.Strings(tokens)
		offerKeys = append(offerKeys, strings.Join(tokens, "|"))
	}
	if len(offerKeys) == 0 {
		return 30
	}

	distinct := map[string]struct{}{}
	for _, key := range offerKeys {
		distinct[key] = struct{}{}
	}
	ratio := float64(len(distinct)) / float64(len(offerKeys))

	var score float64
	switch {
	case ratio >= 0.8:
		score = 90
	case ratio >= 0.6:
		score = 75
	case ratio >= 0.4:
		score = 55
	default:
		score = 35
	}

	attempts := 0
	for _, msg := range buyerMessages {
		if containsAny(strings.ToLower(msg), alternativeKeywords) {
			attempts++
		}
	}
	if attempts >= 2 {
		score = math.Min(100, score+15)
	}

	return round1(score)
}

// analyze builds the per-deal sub-report: reductions achieved, distance
// from target, and whether the learner beat the seller's target.
func (e *Evaluator) analyze(params models.DealParameters, agreed models.Terms, rounds int) models.NegotiationAnalysis {
	analysis := models.NegotiationAnalysis{
		Volume: agreed.Volume,
		Rounds: rounds,
	}

	if agreed.Price != nil {
		final := *agreed.Price
		pct := reductionPct(params.Price.Opening, final)
		analysis.PriceAnalysis = &models.PriceAnalysis{
			Final:              final,
			Opening:            params.Price.Opening,
			Target:             params.Price.Target,
			Reduction:          params.Price.Opening.Sub(final),
			ReductionPct:       pctLabel(pct),
			DistanceFromTarget: final.Sub(params.Price.Target),
			BeatTarget:         final.LessThanOrEqual(params.Price.Target),
		}
	}

	if agreed.Delivery != nil {
		final := *agreed.Delivery
		pct := 0.0
		if params.Delivery.Opening > 0 {
			pct = float64(params.Delivery.Opening-final) / float64(params.Delivery.Opening) * 100
		}
		analysis.DeliveryAnalysis = &models.DeliveryAnalysis{
			Final:              final,
			Opening:            params.Delivery.Opening,
			Target:             params.Delivery.Target,
			Reduction:          params.Delivery.Opening - final,
			ReductionPct:       pctLabel(pct),
			DistanceFromTarget: final - params.Delivery.Target,
			BeatTarget:         final <= params.Delivery.Target,
		}
	}

	return analysis
}

func buyerContents(history []models.Message) []string {
	var out []string
	for _, msg := range history {
		if msg.Role == models.RoleBuyer {
			out = append(out, msg.Content)
		}
	}
	return out
}

func reductionPct(opening, final decimal.Decimal) float64 {
	if opening.IsZero() {
		return 0
	}
	return opening.Sub(final).Div(opening).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
