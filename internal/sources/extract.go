package sources

import (
	"context"
	"regexp"
	"strings"

	"fiipulse/internal/infrastructure"
	"fiipulse/internal/normalize"
	"fiipulse/internal/plausibility"
	"fiipulse/pkg/contracts/domain"
)

// extractWindow is how far past a matched label the engine looks for the
// indicator's value. Source markup puts the value in the same or the next
// sibling element, which flattens to well under this many characters.
const extractWindow = 240

var (
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptPattern = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
	numberPattern = regexp.MustCompile(`[-+]?\d[\d.,]*%?`)
	wordPattern   = regexp.MustCompile(`[A-Za-zÀ-ÿ][A-Za-zÀ-ÿ -]*`)
)

// labelRules maps each indicator to the case-insensitive patterns expected
// to appear adjacent to its value in a source page.
type labelRules map[domain.Indicator][]*regexp.Regexp

// compileLabels builds labelRules from raw pattern strings. Patterns are
// matched case-insensitively.
func compileLabels(raw map[domain.Indicator][]string) labelRules {
	rules := make(labelRules, len(raw))
	for ind, patterns := range raw {
		for _, p := range patterns {
			rules[ind] = append(rules[ind], regexp.MustCompile(`(?i)`+p))
		}
	}
	return rules
}

// flatten converts an HTML document into plain text so label and value end
// up adjacent regardless of markup. No assumption is made about the page
// layout beyond label/value proximity.
func flatten(html string) string {
	text := scriptPattern.ReplaceAllString(html, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return text
}

// extractIndicators runs label-anchored extraction over page text. Every hit
// passes through the normalizer and the plausibility filter before it lands
// on the set; everything else is an expected miss, not an error.
func extractIndicators(ctx context.Context, source, text string, rules labelRules, metrics *infrastructure.Metrics) domain.IndicatorSet {
	set := domain.IndicatorSet{}
	for ind, patterns := range rules {
		value := extractOne(text, ind, patterns)
		if value.IsAbsent() {
			metrics.RecordExtractionMiss(ctx, source, ind.String())
			continue
		}
		set.Set(ind, value)
	}
	return set
}

// extractOne finds the first label match for the indicator and pulls the
// nearest plausible value from the window after it.
func extractOne(text string, ind domain.Indicator, patterns []*regexp.Regexp) domain.Value {
	for _, pattern := range patterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		window := text[loc[1]:]
		if len(window) > extractWindow {
			window = window[:extractWindow]
		}

		if ind.IsCategorical() {
			if word := strings.TrimSpace(wordPattern.FindString(window)); word != "" {
				return domain.Category(word)
			}
			continue
		}

		raw := numberPattern.FindString(window)
		if raw == "" {
			continue
		}
		num, ok := normalize.Parse(raw)
		if !ok {
			continue
		}
		if num, ok = plausibility.Filter(ind, num); !ok {
			continue
		}
		return domain.Number(num)
	}
	return domain.Absent()
}
