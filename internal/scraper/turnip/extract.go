package turnip

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-turnip-automation/internal/models"
	"go-turnip-automation/internal/scraper"
)

var errMissing = errors.New("node not found")

// Extractor turns an islands page snapshot into listings.
type Extractor struct {
	// Now stamps the trade mode on each listing.
	Now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now}
}

// Extract returns every listing block that parsed cleanly.
// Broken blocks are logged and dropped. Zero parseable blocks is ErrExtraction.
func (e *Extractor) Extract(snapshot string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scraper.ErrExtraction, err)
	}

	blocks := doc.Find(SelListingBlock)
	if blocks.Length() == 0 {
		return nil, fmt.Errorf("%w: no %q blocks", scraper.ErrExtraction, SelListingBlock)
	}

	mode := models.TradeModeAt(e.now())
	seen := make(map[string]bool, blocks.Length())
	listings := make([]models.Listing, 0, blocks.Length())

	blocks.Each(func(i int, block *goquery.Selection) {
		listing, err := parseBlock(i, block)
		if err == nil && seen[listing.Code] {
			err = &scraper.FieldParseError{Index: i, Code: listing.Code, Field: "code", Err: errors.New("duplicate code")}
		}
		if err != nil {
			log.Printf("⚠️ Skipping listing: %v", err)
			return
		}
		listing.Mode = mode
		seen[listing.Code] = true
		listings = append(listings, listing)
	})

	if len(listings) == 0 {
		return nil, fmt.Errorf("%w: all %d blocks failed to parse", scraper.ErrExtraction, blocks.Length())
	}
	log.Printf("📦 Extracted %d/%d listings", len(listings), blocks.Length())
	return listings, nil
}

func (e *Extractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// parseBlock reads a block laid out as
//
//	div.note[data-turnip-code]
//	  div > h2                       name
//	  div > img[src=.../fruit.png]   fruit
//	      > div.flex > p             "N Bells"
//	      > p                        hemisphere
//	  p                              description
//	  p                              "Waiting: n/m"
func parseBlock(i int, block *goquery.Selection) (models.Listing, error) {
	var l models.Listing
	fail := func(field string, err error) (models.Listing, error) {
		return models.Listing{}, &scraper.FieldParseError{Index: i, Code: l.Code, Field: field, Err: err}
	}

	l.Code = strings.TrimSpace(block.AttrOr(AttrCode, ""))
	if l.Code == "" {
		return fail("code", errMissing)
	}

	top := block.ChildrenFiltered("div")
	bottom := block.ChildrenFiltered("p")
	if top.Length() < 2 {
		return fail("header", errMissing)
	}
	header, body := top.Eq(0), top.Eq(1)

	heading := header.Find(SelHeading).First()
	l.Name = strings.TrimSpace(heading.Text())
	if heading.Length() == 0 || l.Name == "" {
		return fail("name", errMissing)
	}

	src, ok := body.ChildrenFiltered(SelFruitImage).First().Attr("src")
	if !ok {
		return fail("fruit", errMissing)
	}
	fruit, err := models.ParseFruit(fileStem(src))
	if err != nil {
		return fail("fruit", err)
	}
	l.Fruit = fruit

	priceNode := body.ChildrenFiltered(SelPriceBox).First().Find(SelPrice).First()
	if priceNode.Length() == 0 {
		return fail("price", errMissing)
	}
	if l.Price, err = parseCount(trimSuffixFold(strings.TrimSpace(priceNode.Text()), PriceSuffix)); err != nil {
		return fail("price", err)
	}

	hemiNode := body.ChildrenFiltered("p").First()
	if hemiNode.Length() == 0 {
		return fail("hemisphere", errMissing)
	}
	if l.Hemisphere, err = parseHemisphereLabel(hemiNode.Text()); err != nil {
		return fail("hemisphere", err)
	}

	if bottom.Length() < 2 {
		return fail("queue", errMissing)
	}
	l.Description = strings.TrimSpace(bottom.Eq(0).Text())

	if l.QueueLength, l.QueueCapacity, err = parseQueue(bottom.Eq(1).Text()); err != nil {
		return fail("queue", err)
	}

	return l, nil
}

// fileStem maps "/img/fruit/peach.png?v=2" to "peach".
func fileStem(src string) string {
	if u, err := url.Parse(src); err == nil {
		src = u.Path
	}
	base := path.Base(src)
	return strings.TrimSuffix(base, path.Ext(base))
}

// trimSuffixFold drops suffix regardless of case, so "512 bells" reads like "512 Bells".
func trimSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}

func parseCount(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

func parseQueue(text string) (length, capacity int, err error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, QueuePrefix))
	num, den, ok := strings.Cut(text, QueueDivider)
	if !ok {
		return 0, 0, fmt.Errorf("expected n%sm, got %q", QueueDivider, text)
	}
	if length, err = parseCount(num); err != nil {
		return 0, 0, err
	}
	if capacity, err = parseCount(den); err != nil {
		return 0, 0, err
	}
	return length, capacity, nil
}

// normalizeLabel strips accents and case so "Hémisphère Nord"-style
// decorations do not break matching.
func normalizeLabel(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

func parseHemisphereLabel(text string) (models.Hemisphere, error) {
	label := normalizeLabel(text)
	switch {
	case strings.HasPrefix(label, "north"), strings.Contains(label, "nord"):
		return models.HemisphereNorth, nil
	case strings.HasPrefix(label, "south"), strings.Contains(label, "sud"):
		return models.HemisphereSouth, nil
	}
	return "", fmt.Errorf("unknown hemisphere label %q", strings.TrimSpace(text))
}
