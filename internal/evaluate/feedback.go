package evaluate

import (
	"fmt"
	"strconv"
	"strings"
)

// feedback assembles the report text: an overall line, one banded comment
// per metric, and a single recommendation aimed at the weakest metric.
// Template selection is purely score-driven, so identical inputs always
// yield identical feedback.
func (e *Evaluator) feedback(scores map[string]float64, overall float64) string {
	var parts []string

	switch {
	case overall >= 90:
		parts = append(parts, "Outstanding negotiation! Score: "+fmtScore(overall)+"/100")
	case overall >= 80:
		parts = append(parts, "Strong performance. Score: "+fmtScore(overall)+"/100")
	case overall >= 70:
		parts = append(parts, "Solid effort. Score: "+fmtScore(overall)+"/100")
	case overall >= 60:
		parts = append(parts, "Room for improvement. Score: "+fmtScore(overall)+"/100")
	default:
		parts = append(parts, "Needs significant improvement. Score: "+fmtScore(overall)+"/100")
	}

	parts = append(parts, "\n**Deal Quality:**")
	switch dq := scores[MetricDealQuality]; {
	case dq >= 90:
		parts = append(parts, "- Excellent! You achieved pricing at or near the target range.")
	case dq >= 80:
		parts = append(parts, "- Good negotiation! You secured meaningful price and delivery reductions.")
	case dq >= 70:
		parts = append(parts, "- You reached agreement with moderate savings on initial offers.")
	case dq >= 60:
		parts = append(parts, "- Limited concessions achieved. Consider more assertive negotiation next time.")
	default:
		parts = append(parts, "- The final deal was not significantly better than opening offers.")
	}

	parts = append(parts, "\n**Trade-off Strategy:**")
	switch s := scores[MetricTradeOff]; {
	case s >= 90:
		parts = append(parts, "- Excellent! You consistently identified and proposed win-win trade-offs.")
	case s >= 75:
		parts = append(parts, "- Good! You recognized trade-off opportunities between price, delivery, and volume.")
	case s >= 50:
		parts = append(parts, "- You made some trade-off attempts, but could explore more creative combinations.")
	default:
		parts = append(parts, "- Consider using trade-offs: 'I can accept X if you offer Y'")
	}

	parts = append(parts, "\n**Professionalism:**")
	switch p := scores[MetricProfessionalism]; {
	case p >= 90:
		parts = append(parts, "- Outstanding tone and communication. Respectful and persuasive throughout.")
	case p >= 80:
		parts = append(parts, "- Professional communication with clear reasoning behind your offers.")
	case p >= 70:
		parts = append(parts, "- Generally professional with occasional informal language.")
	default:
		parts = append(parts, "- Focus on maintaining professional tone. Avoid aggressive or dismissive language.")
	}

	parts = append(parts, "\n**Process Management:**")
	switch p := scores[MetricProcess]; {
	case p >= 90:
		parts = append(parts, "- Excellent organization! Clear offers, explicit confirmations, strong flow.")
	case p >= 80:
		parts = append(parts, "- Good structure. Your offers were clear and progression was logical.")
	case p >= 70:
		parts = append(parts, "- Adequate process. Consider summarizing agreed points periodically.")
	default:
		parts = append(parts, "- Work on clarity: make specific offers and confirm mutual understanding.")
	}

	parts = append(parts, "\n**Creativity & Adaptability:**")
	switch c := scores[MetricCreativity]; {
	case c >= 90:
		parts = append(parts, "- Excellent! You adapted strategy based on responses and tried multiple approaches.")
	case c >= 75:
		parts = append(parts, "- Good adaptability. You adjusted offers based on feedback and explored alternatives.")
	case c >= 55:
		parts = append(parts, "- Some adaptation shown, but offers were somewhat repetitive overall.")
	default:
		parts = append(parts, "- Next time, try varying your proposals more based on counteroffers.")
	}

	parts = append(parts, "\n**Key Recommendations:**")
	parts = append(parts, recommendationFor(weakestMetric(scores)))

	return strings.Join(parts, "\n")
}

// weakestMetric returns the lowest-scoring metric, breaking ties by the
// fixed metric order.
func weakestMetric(scores map[string]float64) string {
	weakest := metricOrder[0]
	for _, name := range metricOrder[1:] {
		if scores[name] < scores[weakest] {
			weakest = name
		}
	}
	return weakest
}

func recommendationFor(metric string) string {
	switch metric {
	case MetricDealQuality:
		return "- Focus on achieving better price/delivery concessions. Plan your walk-away point before negotiating."
	case MetricTradeOff:
		return "- Develop a strategy sheet before negotiating: identify trade-offs (price for volume, delivery for price)."
	case MetricProfessionalism:
		return "- Practice maintaining professional tone even when frustrated. Justify your positions calmly."
	case MetricProcess:
		return "- Create a structured template: 'So we have: Price X, Delivery Y, Volume Z. Agreed?' Build mutual understanding."
	default:
		return "- Be flexible! When an offer is rejected, immediately propose a different combination rather than repeating."
	}
}

func fmtScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func pctLabel(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
