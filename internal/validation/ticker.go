// Package validation checks operator-supplied input before it reaches the
// pipeline. Fund tickers on B3 follow a fixed shape (four letters, a series
// number, usually 11 for real-estate funds); catching typos here is cheaper
// than burning a full retry budget against three sources.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// tickerPattern matches B3 fund tickers such as HGLG11 or MXRF11. The
// numeric series is usually 11 but 12/13 exist for subscription receipts.
var tickerPattern = regexp.MustCompile(`^[A-Z]{4}\d{1,2}[A-Z]?$`)

// NormalizeTicker canonicalizes and validates a fund ticker. It returns
// the uppercase trimmed ticker or an error naming the offending input.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", fmt.Errorf("empty ticker")
	}
	if !tickerPattern.MatchString(ticker) {
		return "", fmt.Errorf("invalid ticker %q: expected four letters followed by a series number", raw)
	}
	return ticker, nil
}

// NormalizeTickers canonicalizes a batch, returning the valid tickers and
// one error per rejected input. Valid entries keep their input order.
func NormalizeTickers(raw []string) ([]string, []error) {
	var tickers []string
	var errs []error
	for _, r := range raw {
		ticker, err := NormalizeTicker(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tickers = append(tickers, ticker)
	}
	return tickers, errs
}
