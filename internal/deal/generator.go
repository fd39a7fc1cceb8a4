package deal

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/config"
	"github.com/TheJegede/Negotiator/internal/models"
)

// Reduction fractions per concession level. The target sits 15-25% under the
// opening so the learner has meaningful room to negotiate; the reservation
// sits another 10-15% under the target.
const (
	targetCutMin  = 0.15
	targetCutMax  = 0.25
	reserveCutMin = 0.10
	reserveCutMax = 0.15
)

// Generator produces internally-consistent deal parameters for new sessions.
// Generation never fails: a fixed-order repair pass tightens any draw that
// would violate the gap or floor constraints, so the result always satisfies
// Validate.
type Generator struct {
	Config config.DealConfig
}

// Generate returns the parameters for the given seed. Identical seeds yield
// bit-identical parameters, which keeps a student's scenario stable across
// attempts.
func (g *Generator) Generate(seed int64) models.DealParameters {
	return g.generate(rand.New(rand.NewSource(seed)))
}

// GenerateRandom returns parameters from an unpredictable seed.
func (g *Generator) GenerateRandom() models.DealParameters {
	return g.generate(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// generate draws in a fixed order (price opening, price cuts, delivery
// opening, delivery cuts) so seeding stays reproducible.
func (g *Generator) generate(rng *rand.Rand) models.DealParameters {
	cfg := g.Config

	openingPrice := round2(uniform(rng, cfg.PriceMin, cfg.PriceMax))
	priceCut1 := uniform64(rng, targetCutMin, targetCutMax)
	priceCut2 := uniform64(rng, reserveCutMin, reserveCutMax)

	targetPrice := openingPrice.Mul(oneMinus(priceCut1)).Round(2)
	reservationPrice := targetPrice.Mul(oneMinus(priceCut2)).Round(2)

	// Repair pass, fixed order: target vs opening, reservation vs target,
	// then the reservation floor. Each step only tightens toward validity
	// and is idempotent under re-application.
	minGap := decimal.NewFromFloat(cfg.MinPriceGap)
	if targetPrice.GreaterThan(openingPrice.Sub(minGap)) {
		cut := decimal.Max(minGap, openingPrice.Mul(decimal.NewFromFloat(targetCutMin)))
		targetPrice = openingPrice.Sub(cut).Round(2)
	}
	if reservationPrice.GreaterThan(targetPrice.Sub(minGap)) {
		cut := decimal.Max(minGap, targetPrice.Mul(decimal.NewFromFloat(reserveCutMin)))
		reservationPrice = targetPrice.Sub(cut).Round(2)
	}
	floor := openingPrice.Mul(decimal.NewFromFloat(cfg.ReservationFloorPct)).Round(2)
	reservationPrice = decimal.Max(reservationPrice, floor)

	openingDelivery := int(math.Round(uniform64(rng, float64(cfg.DeliveryMin), float64(cfg.DeliveryMax))))
	deliveryCut1 := uniform64(rng, targetCutMin, targetCutMax)
	deliveryCut2 := uniform64(rng, reserveCutMin, reserveCutMax)

	targetDelivery := int(math.Round(float64(openingDelivery) * (1 - deliveryCut1)))
	reservationDelivery := int(math.Round(float64(targetDelivery) * (1 - deliveryCut2)))

	if targetDelivery > openingDelivery-cfg.MinDeliveryGap {
		cut := maxInt(cfg.MinDeliveryGap, int(math.Round(float64(openingDelivery)*targetCutMin)))
		targetDelivery = openingDelivery - cut
	}
	if reservationDelivery > targetDelivery-cfg.MinDeliveryGap {
		cut := maxInt(cfg.MinDeliveryGap, int(math.Round(float64(targetDelivery)*reserveCutMin)))
		reservationDelivery = targetDelivery - cut
	}
	targetDelivery = maxInt(targetDelivery, cfg.DeliveryTargetFloor)
	reservationDelivery = maxInt(reservationDelivery, cfg.DeliveryReserveFloor)

	return models.DealParameters{
		Price: models.PriceLevels{
			Opening:     openingPrice,
			Target:      targetPrice,
			Reservation: reservationPrice,
		},
		Delivery: models.DeliveryLevels{
			Opening:     openingDelivery,
			Target:      targetDelivery,
			Reservation: reservationDelivery,
		},
		Volume: models.VolumeTiers{
			Standard:       cfg.StandardVolume,
			Tier1Threshold: cfg.Tier1Threshold,
			Tier1Discount:  decimal.NewFromFloat(cfg.Tier1Discount),
			Tier2Threshold: cfg.Tier2Threshold,
			Tier2Discount:  decimal.NewFromFloat(cfg.Tier2Discount),
		},
	}
}

func uniform(rng *rand.Rand, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(uniform64(rng, lo, hi))
}

func uniform64(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func oneMinus(f float64) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(decimal.NewFromFloat(f))
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
