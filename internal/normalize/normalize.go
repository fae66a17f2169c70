package normalize

import (
	"strconv"
	"strings"
)

// whitespace variants seen in scraped pages, including NBSP and narrow NBSP.
var spaceReplacer = strings.NewReplacer(
	" ", "",
	"\t", "",
	"\n", "",
	"\r", "",
	" ", "",
	" ", "",
	" ", "",
)

// Parse converts a raw scraped string into a float64. The ok result is false
// when the string holds no parseable number; callers must treat that as
// absence, not as zero.
func Parse(raw string) (float64, bool) {
	s := spaceReplacer.Replace(raw)
	s = strings.TrimSuffix(s, "%")

	// Keep digits, separators and a leading sign; drop currency symbols and
	// any other adjacent noise the extraction window may have picked up.
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" || s == "-" || s == "+" {
		return 0, false
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas == 1 && dots >= 1:
		// Brazilian convention: dots are thousands separators, the comma is
		// the decimal separator ("1.234,56").
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case commas == 1 && dots == 0:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		// Multiple commas can only be thousands separators ("1,234,567").
		s = strings.ReplaceAll(s, ",", "")
	case commas == 0 && dots > 1:
		// Multiple dots likewise ("1.234.567").
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
