package twlint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var percentagePattern = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)%$`)

// ParseStopSelector returns the offsets (0-100) a keyframes stop selector
// covers. Accepted forms are a percentage ("0%"), a comma list of
// percentages ("0%, 100%"), "from" and "to".
func ParseStopSelector(selector string) ([]float64, error) {
	sel := strings.TrimSpace(selector)
	switch sel {
	case "from":
		return []float64{0}, nil
	case "to":
		return []float64{100}, nil
	case "":
		return nil, fmt.Errorf("empty stop selector")
	}

	parts := strings.Split(sel, ",")
	offsets := make([]float64, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			return nil, fmt.Errorf("empty entry in stop list %q", selector)
		}
		if !percentagePattern.MatchString(p) {
			if len(parts) > 1 && (p == "from" || p == "to") {
				return nil, fmt.Errorf("%q may only be used alone, write %s", p, keywordPercent(p))
			}
			return nil, fmt.Errorf("%q is not a percentage, \"from\" or \"to\"", p)
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a percentage: %w", p, err)
		}
		if n > 100 {
			return nil, fmt.Errorf("%q is outside 0%%-100%%", p)
		}
		offsets = append(offsets, n)
	}
	return offsets, nil
}

func keywordPercent(kw string) string {
	if kw == "from" {
		return "0%"
	}
	return "100%"
}

func formatOffset(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "%"
}
