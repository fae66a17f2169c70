// Package scoring derives a verdict for a consolidated fund record.
//
// Score is a pure function of its input: the same record always produces the
// same score, verdict and rationale, so results can be reproduced and
// regression-tested. Absent indicators simply skip their rules; missing data
// is never penalized.
package scoring

import (
	"fmt"
	"strings"

	"fiipulse/pkg/contracts/domain"
)

// Verdict thresholds on the accumulated score.
const (
	attractiveThreshold = 3
	fairThreshold       = 1
)

// Score evaluates the rule table against a consolidated record. Reasons are
// reported in rule-table order, one line per rule that fired; that ordering
// is part of the contract.
func Score(rec domain.ConsolidatedRecord) domain.ScoredRecord {
	total := 0
	var reasons []string

	add := func(delta int, reason string) {
		total += delta
		reasons = append(reasons, fmt.Sprintf("%s (%+d)", reason, delta))
	}

	if pvp, ok := rec.Indicators.Get(domain.IndicatorPriceToBook).Float(); ok {
		switch {
		case pvp < 0.95:
			add(2, fmt.Sprintf("price/book %.2f trades at a discount to net assets", pvp))
		case pvp <= 1.05:
			add(1, fmt.Sprintf("price/book %.2f is close to net asset value", pvp))
		default:
			add(-1, fmt.Sprintf("price/book %.2f carries a premium over net assets", pvp))
		}
	}

	if dy, ok := rec.Indicators.Get(domain.IndicatorDividendYield12M).Float(); ok {
		switch {
		case dy >= 12:
			add(2, fmt.Sprintf("dividend yield %.1f%% is well above the sector", dy))
		case dy >= 9:
			add(1, fmt.Sprintf("dividend yield %.1f%% is healthy", dy))
		default:
			add(-1, fmt.Sprintf("dividend yield %.1f%% lags the sector", dy))
		}
	}

	if risk, ok := rec.Indicators.Get(domain.IndicatorRiskClass).Text(); ok {
		lower := strings.ToLower(risk)
		switch {
		case strings.Contains(lower, "alto") || strings.Contains(lower, "high"):
			add(-1, fmt.Sprintf("risk class %q flags elevated risk", risk))
		case strings.Contains(lower, "grade") || strings.Contains(lower, "baixo") || strings.Contains(lower, "low"):
			add(1, fmt.Sprintf("risk class %q indicates conservative exposure", risk))
		}
	}

	if lev, ok := rec.Indicators.Get(domain.IndicatorLeveragePct).Float(); ok && lev > 20 {
		add(-1, fmt.Sprintf("leverage %.1f%% exceeds 20%% of assets", lev))
	}

	if conc, ok := rec.Indicators.Get(domain.IndicatorMaxConcentration).Float(); ok && conc > 10 {
		add(-1, fmt.Sprintf("largest asset holds %.1f%% of the portfolio", conc))
	}

	return domain.ScoredRecord{
		ConsolidatedRecord: rec,
		Score:              total,
		Verdict:            verdictFor(total),
		Reasons:            reasons,
	}
}

func verdictFor(total int) domain.Verdict {
	switch {
	case total >= attractiveThreshold:
		return domain.VerdictAttractive
	case total >= fairThreshold:
		return domain.VerdictFair
	default:
		return domain.VerdictCaution
	}
}
