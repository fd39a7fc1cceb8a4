package deal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/models"
)

// FormatParameters renders the seller's secret brief for one session. The
// text is embedded verbatim in the generative seller's prompt; nothing in
// this service parses it back.
func FormatParameters(p models.DealParameters) string {
	var b strings.Builder

	b.WriteString("--- Our Company: 'ChipSource Inc.' ---\n")
	b.WriteString("--- Product: CS-1000 Microprocessor ---\n\n")
	b.WriteString("--- NEGOTIATION VARIABLES & GOALS ---\n\n")

	fmt.Fprintf(&b, "1.  **Price Per Unit:**\n")
	fmt.Fprintf(&b, "    * Opening Offer: $%s\n", p.Price.Opening.StringFixed(2))
	fmt.Fprintf(&b, "    * Our Target: $%s (This is a great outcome for us)\n", p.Price.Target.StringFixed(2))
	fmt.Fprintf(&b, "    * Our Reservation Point: $%s (Our absolute walk-away price. Do not go below this.)\n\n", p.Price.Reservation.StringFixed(2))

	fmt.Fprintf(&b, "2.  **Delivery Date (days from order):**\n")
	fmt.Fprintf(&b, "    * Opening Offer: %d days (This is comfortable for us)\n", p.Delivery.Opening)
	fmt.Fprintf(&b, "    * Our Target: %d days\n", p.Delivery.Target)
	fmt.Fprintf(&b, "    * Our Reservation Point: %d days (This is an expedited rush order, our absolute fastest)\n\n", p.Delivery.Reservation)

	fmt.Fprintf(&b, "3.  **Volume & Discount Tiers:**\n")
	fmt.Fprintf(&b, "    * Standard orders are for %s units. The prices above apply.\n", withCommas(p.Volume.Standard))
	fmt.Fprintf(&b, "    * Tier 1 Discount: For orders > %s units, a %s%% discount on the final per-unit price is possible.\n",
		withCommas(p.Volume.Tier1Threshold), pct(p.Volume.Tier1Discount))
	fmt.Fprintf(&b, "    * Tier 2 Discount: For orders > %s units, a %s%% discount on the final per-unit price is possible.\n\n",
		withCommas(p.Volume.Tier2Threshold), pct(p.Volume.Tier2Discount))

	b.WriteString("--- NEGOTIATION STRATEGY ---\n")
	b.WriteString("* Start with your opening offer, but be prepared to make meaningful concessions.\n")
	b.WriteString("* When the buyer pushes back or makes a counteroffer, reduce your price by $5-15 or delivery by 3-7 days per round.\n")
	b.WriteString("* Make gradual concessions - don't jump straight to your reservation point.\n")
	b.WriteString("* Suggest trade-offs: offer better price for higher volume, or faster delivery for higher price.\n")
	b.WriteString("* If the buyer shows strong interest or urgency, you can move closer to your target.\n")
	b.WriteString("* Never go below your reservation point, but approach it gradually if needed.\n")
	b.WriteString("* Be responsive to counteroffers - match concession energy (if they give, you give).\n\n")

	b.WriteString("--- YOUR GOAL ---\n")
	b.WriteString("Your primary objective is to reach a deal that is as close to your TARGETS as possible. ")
	b.WriteString("A deal is better than no deal, but not if it breaches any of your RESERVATION points.\n")

	return b.String()
}

func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(0)
}

// withCommas formats n with thousands separators (10000 -> "10,000").
func withCommas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
