package generic

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/komikd/internal/providers"
)

// imageSourceAttrs are probed in order; lazy loaders keep the real source in
// data-src and leave src empty.
var imageSourceAttrs = []string{"src", "data-src"}

// attrValue returns the first attribute among names that is present and not
// blank.
func attrValue(sel *goquery.Selection, names ...string) (string, bool) {
	for _, k := range names {
		if v, ok := sel.Attr(k); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}

	return "", false
}

// resolve makes raw absolute against base. ok is false when either side
// does not parse.
func resolve(base, raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	if u.IsAbs() {
		return u.String(), true
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}

	return b.ResolveReference(u).String(), true
}

// collectImages walks the img elements of the reader area in document order.
// total counts every element, including the ones without a usable source.
func collectImages(reader *goquery.Selection, chapterURL string) (out []providers.Image, total int) {
	out = []providers.Image{}
	imgs := reader.Find("img")

	imgs.Each(func(i int, img *goquery.Selection) {
		src, ok := attrValue(img, imageSourceAttrs...)
		if !ok {
			return
		}

		abs, ok := resolve(chapterURL, src)
		if !ok {
			return
		}

		out = append(out, providers.Image{Ordinal: i + 1, URL: abs})
	})

	return out, imgs.Length()
}
