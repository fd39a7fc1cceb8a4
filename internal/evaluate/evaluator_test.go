package evaluate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/config"
	"github.com/TheJegede/Negotiator/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(n int) *int { return &n }

func sampleParams() models.DealParameters {
	return models.DealParameters{
		Price: models.PriceLevels{
			Opening:     dec("52.50"),
			Target:      dec("42.00"),
			Reservation: dec("38.50"),
		},
		Delivery: models.DeliveryLevels{Opening: 60, Target: 45, Reservation: 35},
		Volume: models.VolumeTiers{
			Standard:       10000,
			Tier1Threshold: 20000,
			Tier1Discount:  dec("0.05"),
			Tier2Threshold: 50000,
			Tier2Discount:  dec("0.08"),
		},
	}
}

func sampleHistory() []models.Message {
	return []models.Message{
		{Role: models.RoleSeller, Content: "Good morning, I'm Alex from ChipSource. Our standard price is $52.50 per unit with 60-day delivery."},
		{Role: models.RoleBuyer, Content: "That's quite high. Can you reduce it to $40 per unit with 30 days delivery?"},
		{Role: models.RoleSeller, Content: "I can offer $48 per unit with 50 days delivery if you commit to 15,000 units."},
		{Role: models.RoleBuyer, Content: "What if we did $45 per unit and 40 days if we order 20,000 units? That's a good volume commitment."},
		{Role: models.RoleSeller, Content: "I can accept $44 per unit, 42 days delivery for 20,000 units."},
		{Role: models.RoleBuyer, Content: "Perfect! So we have a deal: $44 per unit, 42 days, 20,000 units. I confirm this agreement."},
	}
}

func sampleAgreed() models.Terms {
	return models.Terms{Price: decPtr("44.0"), Delivery: intPtr(42), Volume: intPtr(20000)}
}

func TestDealQualityWorkedExample(t *testing.T) {
	// Reduction 52.50 -> 44.00 is 16.2%, one band under target (80); the
	// 42-day delivery beats the 45-day target (95). Combined:
	// 80*0.6 + 95*0.4 = 86.
	e := New(DefaultRubric())
	got := e.scoreDealQuality(sampleParams(), sampleAgreed())
	if got != 86 {
		t.Fatalf("deal quality = %v, want 86", got)
	}
}

func TestDealQualityEmptyTermsScoresZero(t *testing.T) {
	e := New(DefaultRubric())
	if got := e.scoreDealQuality(sampleParams(), models.Terms{}); got != 0 {
		t.Fatalf("empty agreed terms scored %v, want 0", got)
	}
}

func TestDealQualityMonotoneTowardTarget(t *testing.T) {
	// Holding delivery and volume fixed, lowering the agreed price toward
	// the target must never lower the score.
	e := New(DefaultRubric())
	params := sampleParams()
	prev := -1.0
	for _, price := range []string{"52.00", "50.00", "48.00", "46.00", "44.00", "42.00"} {
		agreed := models.Terms{Price: decPtr(price), Delivery: intPtr(42), Volume: intPtr(20000)}
		got := e.scoreDealQuality(params, agreed)
		if got < prev {
			t.Fatalf("score dropped from %v to %v at price %s", prev, got, price)
		}
		prev = got
	}
}

func TestEvaluateWorkedExample(t *testing.T) {
	e := New(DefaultRubric())
	res := e.Evaluate(sampleHistory(), sampleParams(), sampleAgreed())

	if res.Metrics[MetricDealQuality].Score != 86 {
		t.Fatalf("deal quality = %v, want 86", res.Metrics[MetricDealQuality].Score)
	}
	if res.Rounds != 3 {
		t.Fatalf("rounds = %d, want 3", res.Rounds)
	}
	if res.Analysis.PriceAnalysis == nil || res.Analysis.PriceAnalysis.ReductionPct != "16.2%" {
		t.Fatalf("price analysis = %+v, want 16.2%% reduction", res.Analysis.PriceAnalysis)
	}
	if !res.Analysis.DeliveryAnalysis.BeatTarget {
		t.Fatal("42 days beats the 45 day target")
	}
	if res.Analysis.PriceAnalysis.BeatTarget {
		t.Fatal("44.00 does not beat the 42.00 target")
	}

	// Deterministic: same inputs, same report, including feedback text.
	again := e.Evaluate(sampleHistory(), sampleParams(), sampleAgreed())
	if res.OverallScore != again.OverallScore || res.Feedback != again.Feedback {
		t.Fatal("evaluation is not deterministic")
	}
}

func TestEvaluateBounded(t *testing.T) {
	e := New(DefaultRubric())
	histories := [][]models.Message{
		nil,
		sampleHistory(),
		{
			{Role: models.RoleBuyer, Content: "This is ridiculous, stupid, outrageous and unacceptable. I demand a discount, idiot."},
			{Role: models.RoleBuyer, Content: "lol omg ur gonna regret this, no idea, clueless."},
			{Role: models.RoleBuyer, Content: "stupid stupid stupid"},
		},
		{
			{Role: models.RoleBuyer, Content: strings.Repeat("please thank appreciate flexible partnership professional ", 30)},
		},
	}
	terms := []models.Terms{
		{},
		sampleAgreed(),
		{Price: decPtr("0"), Delivery: intPtr(0), Volume: intPtr(0)},
		{Price: decPtr("999999"), Delivery: intPtr(500)},
	}
	for _, h := range histories {
		for _, agreed := range terms {
			res := e.Evaluate(h, sampleParams(), agreed)
			if res.OverallScore < 0 || res.OverallScore > 100 {
				t.Fatalf("overall score %v out of range", res.OverallScore)
			}
			for name, m := range res.Metrics {
				if m.Score < 0 || m.Score > 100 {
					t.Fatalf("metric %s score %v out of range", name, m.Score)
				}
				if m.Grade != e.Rubric.Grade(m.Score) {
					t.Fatalf("metric %s grade %s inconsistent with score %v", name, m.Grade, m.Score)
				}
			}
			if res.OverallGrade != e.Rubric.Grade(res.OverallScore) {
				t.Fatalf("overall grade %s inconsistent with score %v", res.OverallGrade, res.OverallScore)
			}
		}
	}
}

func TestZeroValuesArePresent(t *testing.T) {
	// A literal 0 price or volume is an agreed value, not a missing one.
	e := New(DefaultRubric())
	agreed := models.Terms{Price: decPtr("0"), Delivery: intPtr(0), Volume: intPtr(0)}
	res := e.Evaluate(nil, sampleParams(), agreed)
	if res.Analysis.PriceAnalysis == nil {
		t.Fatal("zero price should still produce a price analysis")
	}
	if !res.Analysis.PriceAnalysis.BeatTarget {
		t.Fatal("a zero price trivially beats the target")
	}
	if res.Analysis.Volume == nil || *res.Analysis.Volume != 0 {
		t.Fatalf("volume = %v, want present 0", res.Analysis.Volume)
	}
}

func TestTradeOffBands(t *testing.T) {
	e := New(DefaultRubric())
	tests := []struct {
		name     string
		messages []string
		want     float64
	}{
		{"no attempts", []string{"too expensive", "lower it"}, 30},
		{"one attempt", []string{"if you drop the price we sign", "fine"}, 50},
		{"half of rounds", []string{
			"if you drop the price we order more",
			"in exchange for faster delivery",
			"what about $45",
			"and 40 days",
		}, 75},
		{"every round", []string{
			"if you drop the price we buy in bulk",
			"larger order in exchange for a discount",
			"volume commitment for faster delivery",
		}, 90},
	}
	for _, tt := range tests {
		if got := e.scoreTradeOffStrategy(tt.messages); got != tt.want {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfessionalismRedFlagsAndBonuses(t *testing.T) {
	e := New(DefaultRubric())
	if got := e.scoreProfessionalism([]string{"a perfectly ordinary counteroffer"}); got != 85 {
		t.Fatalf("neutral message scored %v, want 85", got)
	}
	if got := e.scoreProfessionalism([]string{"this is stupid"}); got != 75 {
		t.Fatalf("one red flag scored %v, want 75", got)
	}
	got := e.scoreProfessionalism([]string{"please reconsider, thank you, we appreciate it"})
	if got != 100 {
		t.Fatalf("courteous message scored %v, want 100", got)
	}
	if got := e.scoreProfessionalism(nil); got != 85 {
		t.Fatalf("empty transcript scored %v, want 85", got)
	}
}

func TestProcessManagement(t *testing.T) {
	e := New(DefaultRubric())
	if got := e.scoreProcessManagement(nil); got != 70 {
		t.Fatalf("no buyer messages scored %v, want base 70", got)
	}
	// Confirmation (+15), balanced length (+10), offers in every message
	// (+10) from base 70 caps at 100 after clamping.
	messages := []string{
		"I confirm the deal at $44 per unit with 42 days delivery for all units.",
		"We would like the order at $45 per unit and 40 days please and thanks.",
	}
	if got := e.scoreProcessManagement(messages); got != 100 {
		t.Fatalf("structured negotiation scored %v, want 100", got)
	}
	if got := e.scoreProcessManagement([]string{"no", "ok"}); got != 65 {
		t.Fatalf("terse messages scored %v, want 65", got)
	}
}

func TestCreativityShortCircuit(t *testing.T) {
	e := New(DefaultRubric())
	if got := e.scoreCreativity([]string{"only one message with $45"}); got != 50 {
		t.Fatalf("single message scored %v, want neutral 50", got)
	}
	if got := e.scoreCreativity([]string{"no numbers", "still none"}); got != 30 {
		t.Fatalf("no numeric offers scored %v, want 30", got)
	}
	varied := []string{"$50 and 30 days", "$45 and 35 days", "$42 and 40 days"}
	if got := e.scoreCreativity(varied); got != 90 {
		t.Fatalf("fully varied offers scored %v, want 90", got)
	}
	repetitive := []string{"$50 and 30 days", "$50 and 30 days", "$50 and 30 days"}
	if got := e.scoreCreativity(repetitive); got != 35 {
		t.Fatalf("repeated offers scored %v, want 35", got)
	}
}

func TestFeedbackTargetsWeakestMetric(t *testing.T) {
	e := New(DefaultRubric())
	scores := map[string]float64{
		MetricDealQuality:     86,
		MetricTradeOff:        30,
		MetricProfessionalism: 85,
		MetricProcess:         95,
		MetricCreativity:      90,
	}
	fb := e.feedback(scores, 75)
	if !strings.Contains(fb, "strategy sheet") {
		t.Fatalf("feedback should recommend trade-off work, got:\n%s", fb)
	}

	// Tie between deal quality and trade-off resolves to deal quality, the
	// first metric in the fixed order.
	scores[MetricDealQuality] = 30
	fb = e.feedback(scores, 60)
	if !strings.Contains(fb, "walk-away point") {
		t.Fatalf("tie should resolve to deal quality, got:\n%s", fb)
	}
}

func TestRubricFromConfigRejectsUnknownMetric(t *testing.T) {
	_, err := RubricFromConfig(config.RubricConfig{Weights: map[string]float64{"typo_metric": 0.5}})
	if err == nil {
		t.Fatal("unknown metric name should be rejected")
	}

	// An override must keep the weights a proper distribution, so a valid
	// config rebalances rather than bumping one metric in isolation.
	r, err := RubricFromConfig(config.RubricConfig{Weights: map[string]float64{
		MetricDealQuality: 0.40,
		MetricTradeOff:    0.21,
	}})
	if err != nil {
		t.Fatalf("valid override rejected: %v", err)
	}
	if r.Weights[MetricDealQuality] != 0.40 {
		t.Fatalf("weight override not applied: %v", r.Weights[MetricDealQuality])
	}
}

func TestRubricFromConfigRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights map[string]float64
	}{
		{
			name:    "weight above one inflates the sum",
			weights: map[string]float64{MetricDealQuality: 5.0},
		},
		{
			name:    "negative weight",
			weights: map[string]float64{MetricDealQuality: -0.1},
		},
		{
			name: "sum well below one",
			weights: map[string]float64{
				MetricDealQuality: 0.05,
				MetricTradeOff:    0.05,
			},
		},
	}
	for _, tt := range tests {
		if _, err := RubricFromConfig(config.RubricConfig{Weights: tt.weights}); err == nil {
			t.Fatalf("%s: config accepted, want error", tt.name)
		}
	}
}
