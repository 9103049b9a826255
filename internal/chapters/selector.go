package chapters

import (
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-9

// Selection is a set of wanted chapter numbers. An empty selection keeps
// every chapter.
type Selection []float64

// ParseSelection reads a comma-separated list such as "3, 5.5". Tokens that
// are not plain digits with at most one decimal point are dropped.
func ParseSelection(input string) Selection {
	var out Selection

	for p := range strings.SplitSeq(input, ",") {
		p = strings.TrimSpace(p)
		if !isNumeric(p) {
			continue
		}

		n, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}

		out = append(out, n)
	}

	return out
}

func isNumeric(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}

	return digits > 0 && dots <= 1
}

func (s Selection) Empty() bool {
	return len(s) == 0
}

func (s Selection) Contains(n float64) bool {
	for _, v := range s {
		if math.Abs(v-n) < epsilon {
			return true
		}
	}

	return false
}

func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = FormatNumber(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Filter keeps the references whose number is selected, preserving order.
// References without a chapter number never match a non-empty selection.
func Filter(all []Reference, sel Selection) []Reference {
	if sel.Empty() {
		return all
	}

	out := []Reference{}
	for _, r := range all {
		if r.HasNumber && sel.Contains(r.Number) {
			out = append(out, r)
		}
	}

	return out
}
