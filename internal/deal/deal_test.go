package deal

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/config"
	"github.com/TheJegede/Negotiator/internal/models"
)

func testDealConfig() config.DealConfig {
	return config.DealConfig{
		PriceMin:             50,
		PriceMax:             300,
		MinPriceGap:          5,
		ReservationFloorPct:  0.50,
		DeliveryMin:          40,
		DeliveryMax:          100,
		MinDeliveryGap:       3,
		DeliveryTargetFloor:  5,
		DeliveryReserveFloor: 3,
		StandardVolume:       10000,
		Tier1Threshold:       20000,
		Tier1Discount:        0.05,
		Tier2Threshold:       50000,
		Tier2Discount:        0.08,
	}
}

func paramsEqual(a, b models.DealParameters) bool {
	return a.Price.Opening.Equal(b.Price.Opening) &&
		a.Price.Target.Equal(b.Price.Target) &&
		a.Price.Reservation.Equal(b.Price.Reservation) &&
		a.Delivery == b.Delivery &&
		a.Volume.Standard == b.Volume.Standard &&
		a.Volume.Tier1Threshold == b.Volume.Tier1Threshold &&
		a.Volume.Tier2Threshold == b.Volume.Tier2Threshold
}

func TestGenerateDeterministic(t *testing.T) {
	g := &Generator{Config: testDealConfig()}
	a := g.Generate(42)
	b := g.Generate(42)
	if !paramsEqual(a, b) {
		t.Fatalf("same seed produced different parameters:\n%+v\n%+v", a, b)
	}
}

func TestGenerateSeedDivergence(t *testing.T) {
	g := &Generator{Config: testDealConfig()}
	a := g.Generate(42)
	b := g.Generate(43)
	if a.Price.Opening.Equal(b.Price.Opening) && a.Delivery.Opening == b.Delivery.Opening {
		t.Fatalf("seeds 42 and 43 produced identical draws: %+v", a)
	}
}

func TestGenerateInvariantSweep(t *testing.T) {
	g := &Generator{Config: testDealConfig()}
	for seed := int64(0); seed < 10000; seed++ {
		p := g.Generate(seed)
		if err := Validate(p, g.Config); err != nil {
			t.Fatalf("seed %d: %v (params %+v)", seed, err, p)
		}
		floor := p.Price.Opening.Mul(decimal.NewFromFloat(0.5)).Round(2)
		if p.Price.Reservation.LessThan(floor) {
			t.Fatalf("seed %d: reservation %s below half of opening %s", seed, p.Price.Reservation, p.Price.Opening)
		}
	}
}

func TestGenerateCutBands(t *testing.T) {
	// With the test config the opening-target repair never fires (15% of the
	// cheapest opening already exceeds the minimum gap), so the target must
	// land inside the drawn reduction band.
	g := &Generator{Config: testDealConfig()}
	lo := decimal.NewFromFloat(1 - targetCutMax)
	hi := decimal.NewFromFloat(1 - targetCutMin)
	eps := decimal.NewFromFloat(0.01)
	for seed := int64(0); seed < 200; seed++ {
		p := g.Generate(seed)
		ratio := p.Price.Target.Div(p.Price.Opening)
		if ratio.LessThan(lo.Sub(eps)) || ratio.GreaterThan(hi.Add(eps)) {
			t.Fatalf("seed %d: target/opening ratio %s outside [%s, %s]", seed, ratio, lo, hi)
		}
	}
}

func TestGenerateRepairIdempotent(t *testing.T) {
	// Re-generating with the same seed must re-run the same repairs and land
	// on the same values; a repair that keeps moving would break this.
	g := &Generator{Config: testDealConfig()}
	for seed := int64(100); seed < 120; seed++ {
		if !paramsEqual(g.Generate(seed), g.Generate(seed)) {
			t.Fatalf("seed %d not stable under regeneration", seed)
		}
	}
}

func TestValidateNamedViolations(t *testing.T) {
	cfg := testDealConfig()
	g := &Generator{Config: cfg}
	valid := g.Generate(7)

	tests := []struct {
		name   string
		mutate func(*models.DealParameters)
		want   error
	}{
		{
			name: "target above opening",
			mutate: func(p *models.DealParameters) {
				p.Price.Target = p.Price.Opening.Add(decimal.NewFromInt(1))
			},
			want: ErrTargetNotBelowOpening,
		},
		{
			name: "reservation above target",
			mutate: func(p *models.DealParameters) {
				p.Price.Reservation = p.Price.Target.Add(decimal.NewFromInt(1))
			},
			want: ErrReservationNotBelowTarget,
		},
		{
			name: "price gap too small",
			mutate: func(p *models.DealParameters) {
				p.Price.Target = p.Price.Opening.Sub(decimal.NewFromInt(1))
			},
			want: ErrPriceGapTooSmall,
		},
		{
			name: "reservation gap too small",
			mutate: func(p *models.DealParameters) {
				p.Price.Reservation = p.Price.Target.Sub(decimal.NewFromInt(1))
			},
			want: ErrReservationGapTooSmall,
		},
		{
			name: "reservation below floor",
			mutate: func(p *models.DealParameters) {
				p.Price.Reservation = p.Price.Opening.Mul(decimal.NewFromFloat(0.4)).Round(2)
			},
			want: ErrReservationBelowFloor,
		},
		{
			name: "delivery target above opening",
			mutate: func(p *models.DealParameters) {
				p.Delivery.Target = p.Delivery.Opening + 1
			},
			want: ErrDeliveryTargetNotBelowOpening,
		},
		{
			name: "delivery reservation above target",
			mutate: func(p *models.DealParameters) {
				p.Delivery.Reservation = p.Delivery.Target + 1
			},
			want: ErrDeliveryReserveNotBelowTarget,
		},
		{
			name: "delivery reservation gap too small",
			mutate: func(p *models.DealParameters) {
				p.Delivery.Reservation = p.Delivery.Target - 1
			},
			want: ErrDeliveryReserveGapTooSmall,
		},
		{
			name: "tier 1 below standard",
			mutate: func(p *models.DealParameters) {
				p.Volume.Tier1Threshold = p.Volume.Standard - 1
			},
			want: ErrTier1NotAboveStandard,
		},
		{
			name: "tier 2 below tier 1",
			mutate: func(p *models.DealParameters) {
				p.Volume.Tier2Threshold = p.Volume.Tier1Threshold
			},
			want: ErrTier2NotAboveTier1,
		},
	}

	for _, tt := range tests {
		p := valid
		tt.mutate(&p)
		err := Validate(p, cfg)
		if !errors.Is(err, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}

	if err := Validate(valid, cfg); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
}

func TestSeedFromStudentID(t *testing.T) {
	if SeedFromStudentID("S12345") != SeedFromStudentID("S12345") {
		t.Fatal("same student id produced different seeds")
	}
	if SeedFromStudentID("S12345") == SeedFromStudentID("S12346") {
		t.Fatal("different student ids produced the same seed")
	}
}

func TestFormatParameters(t *testing.T) {
	g := &Generator{Config: testDealConfig()}
	p := g.Generate(1)
	brief := FormatParameters(p)

	for _, want := range []string{
		"ChipSource Inc.",
		"$" + p.Price.Opening.StringFixed(2),
		"$" + p.Price.Reservation.StringFixed(2),
		"10,000 units",
		"20,000 units",
		"50,000 units",
		"5% discount",
		"8% discount",
	} {
		if !strings.Contains(brief, want) {
			t.Fatalf("brief missing %q:\n%s", want, brief)
		}
	}
}

func TestWithCommas(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000, "10,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := withCommas(tt.in); got != tt.want {
			t.Fatalf("withCommas(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
