package chapters

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

const (
	DefaultToken = "-chapter-"

	unknownLabel = "unknown"
)

var reNumber = regexp.MustCompile(`chapter-([0-9]+(?:\.[0-9]+)?)`)

// Reference is a chapter page discovered on a series page.
type Reference struct {
	URL       string
	Number    float64
	HasNumber bool
}

// NewReference normalizes raw and derives its chapter number.
func NewReference(raw string) Reference {
	u := Normalize(raw)
	n, ok := ParseNumber(u)

	return Reference{URL: u, Number: n, HasNumber: ok}
}

// Normalize strips trailing path separators.
func Normalize(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// ParseNumber returns the first chapter-<n>[.<m>] value found in s.
func ParseNumber(s string) (float64, bool) {
	m := reNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// NumberOf is ParseNumber with 0 for URLs carrying no chapter number.
func NumberOf(s string) float64 {
	n, _ := ParseNumber(s)
	return n
}

// FormatNumber prints integral values with one fractional digit (7 -> "7.0").
func FormatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Label is the chapter number as used in folder names. Only a URL without a
// chapter number is "unknown"; chapter-0 keeps its number and becomes "0.0".
func (r Reference) Label() string {
	if !r.HasNumber {
		return unknownLabel
	}

	return FormatNumber(r.Number)
}

func (r Reference) FolderName() string {
	return "Ch" + r.Label()
}

// SeriesSlug is the path segment in front of the chapter token, made safe
// for use as a directory name. The result is lowercase.
func SeriesSlug(chapterURL, token string) string {
	u := Normalize(chapterURL)
	if token == "" {
		token = DefaultToken
	}

	if i := strings.Index(strings.ToLower(u), strings.ToLower(token)); i >= 0 {
		u = u[:i]
	}
	if i := strings.LastIndex(u, "/"); i >= 0 {
		u = u[i+1:]
	}

	s := slug.Make(u)
	if s == "" {
		return unknownLabel
	}

	return s
}

// OutputDir is <base>/<series slug>/Ch<label>.
func (r Reference) OutputDir(base, token string) string {
	return filepath.Join(base, SeriesSlug(r.URL, token), r.FolderName())
}
