package genai

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// abbreviations must not end a sentence during splitting. Business
// correspondence is full of them.
var abbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Inc.", "Ltd.", "Corp.", "Co.",
	"etc.", "e.g.", "i.e.", "vs.", "dept.", "approx.", "qty.", "no.",
}

var decimalRe = regexp.MustCompile(`\$?\d+\.\d+`)

// sentenceEndRe marks a sentence boundary: terminal punctuation followed
// by whitespace. The cut happens after the punctuation character.
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// Clean strips the doubled-output failure mode where a model emits its
// whole answer twice as repeated paragraph blocks. Anything else passes
// through untouched.
func Clean(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) > 1 && len(paragraphs)%2 == 0 {
		mid := len(paragraphs) / 2
		if slices.Equal(paragraphs[:mid], paragraphs[mid:]) {
			return strings.Join(paragraphs[:mid], "\n\n")
		}
	}
	return text
}

// EnforceBrevity truncates text to at most maxSentences complete
// sentences. Abbreviations and decimal numbers are shielded with
// placeholders first so "$15.50" or "Inc." never counts as a sentence
// end. Text already within the limit is returned unchanged.
func EnforceBrevity(text string, maxSentences int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || maxSentences <= 0 {
		return text
	}

	protected := trimmed
	restore := make([]string, 0, 8)
	for i, abbr := range abbreviations {
		if !strings.Contains(protected, abbr) {
			continue
		}
		placeholder := fmt.Sprintf("__ABBR%d__", i)
		restore = append(restore, placeholder, abbr)
		protected = strings.ReplaceAll(protected, abbr, placeholder)
	}
	for i, m := range decimalRe.FindAllString(protected, -1) {
		placeholder := fmt.Sprintf("__DEC%d__", i)
		restore = append(restore, placeholder, m)
		protected = strings.Replace(protected, m, placeholder, 1)
	}

	sentences := splitSentences(protected)
	if len(sentences) <= maxSentences {
		return text
	}

	truncated := strings.Join(sentences[:maxSentences], " ")
	truncated = strings.NewReplacer(restore...).Replace(truncated)
	if !strings.ContainsAny(truncated[len(truncated)-1:], ".!?") {
		truncated += "."
	}
	return truncated
}

// splitSentences cuts after terminal punctuation that is followed by
// whitespace, dropping empty pieces.
func splitSentences(text string) []string {
	var out []string
	prev := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		piece := strings.TrimSpace(text[prev : loc[0]+1])
		if piece != "" {
			out = append(out, piece)
		}
		prev = loc[1]
	}
	if piece := strings.TrimSpace(text[prev:]); piece != "" {
		out = append(out, piece)
	}
	return out
}
