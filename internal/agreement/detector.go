// Package agreement decides, from a conversation transcript, whether the
// buyer has accepted a deal and what concrete terms the acceptance binds.
package agreement

import (
	"strings"

	"github.com/TheJegede/Negotiator/internal/extract"
	"github.com/TheJegede/Negotiator/internal/models"
)

// Phrases that signal the buyer is accepting an offer. Matched as
// substrings of the lower-cased message.
var signalKeywords = []string{
	"agree", "agreed", "deal", "accept", "acceptable", "works for me",
	"sounds good", "confirmed", "yes", "okay that works", "perfect",
	"let's do it", "that works", "i accept",
}

// minResolvedFields is the threshold below which a candidate message is not
// treated as carrying the agreed terms. A bare "I agree" states nothing by
// itself, and a single stray dollar amount must not pass for a full
// agreement; two of three fields is the floor for resolving from context.
const minResolvedFields = 2

// Result is the detector's verdict. An incomplete result is an expected,
// common outcome while the negotiation is still open, not a failure.
type Result struct {
	Complete bool
	Missing  []string
	Terms    models.Terms
}

// Detect scans the transcript from the most recent entry backward for a
// buyer acceptance signal and resolves the terms of that acceptance:
// first from the buyer's own message, then from the immediately preceding
// seller proposal, then from the nearest earlier seller message carrying at
// least two extractable fields.
func Detect(history []models.Message) Result {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != models.RoleBuyer {
			continue
		}
		if !containsAny(strings.ToLower(msg.Content), signalKeywords) {
			continue
		}
		terms := resolveTerms(history, i)
		return Result{
			Complete: terms.Complete(),
			Missing:  terms.Missing(),
			Terms:    terms,
		}
	}
	return Result{Missing: []string{"price", "delivery", "volume"}}
}

func resolveTerms(history []models.Message, accepted int) models.Terms {
	if terms := extract.Terms(history[accepted].Content); terms.FieldCount() >= minResolvedFields {
		return terms
	}

	searchFrom := accepted - 1
	if accepted > 0 && history[accepted-1].Role == models.RoleSeller {
		if terms := extract.Terms(history[accepted-1].Content); terms.FieldCount() >= minResolvedFields {
			return terms
		}
		searchFrom = accepted - 2
	}

	for j := searchFrom; j >= 0; j-- {
		if history[j].Role != models.RoleSeller {
			continue
		}
		if terms := extract.Terms(history[j].Content); terms.FieldCount() >= minResolvedFields {
			return terms
		}
	}

	return models.Terms{}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
