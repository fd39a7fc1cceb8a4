package service

import (
	"strings"
	"time"

	"github.com/TheJegede/Negotiator/internal/models"
	"github.com/TheJegede/Negotiator/internal/session"
)

// masterPromptTemplate frames every provider call. The deal brief carries
// the hidden numbers; the behavior rules keep the seller concession-driven
// instead of either folding immediately or refusing to move.
const masterPromptTemplate = `
You are Alex, a professional Supply Chain Manager for 'ChipSource Inc.'.
Be direct, efficient, and business-like. Keep responses brief.

---
DEAL PARAMETERS:
{deal_parameters}
---
NEGOTIATION BEHAVIOR RULES:
1. Be concise: Limit responses to 2-3 sentences maximum.
2. Be professional: Maintain a business-like tone.
3. Make meaningful concessions: When the buyer pushes back, reduce your offer by $5-15 on price or 3-7 days on delivery.
4. Never make trivial $1-2 reductions - concessions should feel significant to encourage continued negotiation.
5. Seek trade-offs: Propose compromises (e.g., "I can lower the price if you increase volume").
6. Respond to buyer pressure: If they express urgency or strong interest, consider moving toward your target.
7. Gradual approach: Move from opening toward reservation in 2-4 steps, not immediately.
8. Never reveal your Target or Reservation points explicitly.
9. Use plain text only, no markdown formatting.
10. When confirming a deal, state all terms clearly: "Confirmed: Price $X, Delivery Y days, Volume Z units."
---
CONVERSATION HISTORY:
{conversation_history}
---
TASK:
State: '{current_state}'
User said: "{user_input}"
Instruction: {task}
Respond as Alex (2-3 sentences max). Make a meaningful counteroffer or concession if appropriate:
`

const sellerTask = "Respond concisely in 2-3 sentences. Be direct and business-like. Propose trade-offs if needed."

func buildPrompt(brief string, history []models.Message, state session.State, userInput string) string {
	var lines []string
	for _, msg := range history {
		lines = append(lines, roleTitle(msg.Role)+": "+msg.Content)
	}

	return strings.NewReplacer(
		"{deal_parameters}", brief,
		"{conversation_history}", strings.Join(lines, "\n"),
		"{current_state}", string(state),
		"{user_input}", userInput,
		"{task}", sellerTask,
	).Replace(masterPromptTemplate)
}

func roleTitle(r models.Role) string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Greeting opens with a salutation for the buyer's probable time of day.
func Greeting(now time.Time) string {
	switch hour := now.UTC().Hour(); {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// OpeningMessage is the seller's first line in every new session.
func OpeningMessage(now time.Time) string {
	return Greeting(now) + ". Thank you for your interest in the CS-1000 microprocessor. " +
		"I'm Alex from ChipSource Inc. I have our standard terms here, but I'm confident " +
		"we can find an arrangement that works well for both our companies. Our standard " +
		"offering is 10,000 units at our current market price with our normal delivery " +
		"schedule. What specific requirements does your company have for this order?"
}
