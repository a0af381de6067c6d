package ilias

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"ilias-scraper/lib/htmlutil"
	"ilias-scraper/lib/textutil"
)

// The portal renders object details as a sequence of named "info
// screen" regions, each holding label/value rows. These selectors are
// the de-facto wire contract with the portal's markup; if the portal
// changes its templates, this is the one place to update.
const (
	blockSelector         = ".ilInfoScreenSec"
	blockHeadingSelector  = ".ilHeader"
	propertyRowSelector   = ".form-group"
	propertyKeySelector   = ".il_InfoScreenProperty"
	propertyValueSelector = ".il_InfoScreenPropertyValue"
)

// PropertyBlock is one named region of a detail page with zero or more
// label/value rows.
type PropertyBlock struct {
	Heading string
	sel     *goquery.Selection
}

// PropertyBlocks groups the info-screen regions of a page, keyed by
// their heading text. A region without a heading is a malformed page.
func PropertyBlocks(root *goquery.Selection) ([]PropertyBlock, error) {
	var blocks []PropertyBlock
	var parseErr error

	root.Find(blockSelector).EachWithBreak(func(_ int, region *goquery.Selection) bool {
		heading := region.Find(blockHeadingSelector).First()
		if heading.Length() == 0 {
			parseErr = fmt.Errorf("%w: info screen region without a heading", ErrStructuralMismatch)
			return false
		}
		blocks = append(blocks, PropertyBlock{
			Heading: htmlutil.CleanText(heading),
			sel:     region,
		})
		return true
	})

	return blocks, parseErr
}

// FindBlock returns the first block whose heading matches one of the
// accepted localized spellings. A missing block is not an error here:
// callers map it to "optional field absent" or to a structural failure
// depending on whether the field is mandatory.
func FindBlock(blocks []PropertyBlock, headings []string) (PropertyBlock, bool) {
	for _, b := range blocks {
		if textutil.MatchLabel(b.Heading, headings) {
			return b, true
		}
	}
	return PropertyBlock{}, false
}

// MandatoryBlock is FindBlock for fields that must be present.
func MandatoryBlock(blocks []PropertyBlock, headings []string) (PropertyBlock, error) {
	b, ok := FindBlock(blocks, headings)
	if !ok {
		return PropertyBlock{}, fmt.Errorf("%w: no %v block on page", ErrStructuralMismatch, headings)
	}
	return b, nil
}

// Selection exposes the underlying region for positional row parsing.
func (b PropertyBlock) Selection() *goquery.Selection {
	return b.sel
}

// Rows returns the property rows of the block in document order.
func (b PropertyBlock) Rows() *goquery.Selection {
	return b.sel.Find(propertyRowSelector)
}

// ValueSelection locates the row whose label cell matches one of the
// accepted spellings and returns its value cell. Once the block itself
// was found, a missing label is always a hard error: the page renders
// the region but not in any spelling we know, which means either the
// label tables are stale or the page is broken.
func (b PropertyBlock) ValueSelection(labels []string) (*goquery.Selection, error) {
	var row *goquery.Selection

	b.Rows().EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
		key := candidate.Find(propertyKeySelector).First()
		if key.Length() == 0 {
			return true
		}
		if textutil.MatchLabel(key.Text(), labels) {
			row = candidate
			return false
		}
		return true
	})

	if row == nil {
		return nil, fmt.Errorf("%w: block %q has no row labeled %v", ErrLocalizationMismatch, b.Heading, labels)
	}

	value := row.Find(propertyValueSelector).First()
	if value.Length() == 0 {
		return nil, fmt.Errorf("%w: row %v in block %q has no value cell", ErrStructuralMismatch, labels, b.Heading)
	}
	return value, nil
}

// Value returns the trimmed text of the value cell for the given
// labels.
func (b PropertyBlock) Value(labels []string) (string, error) {
	value, err := b.ValueSelection(labels)
	if err != nil {
		return "", err
	}
	return htmlutil.CleanText(value), nil
}

// FirstValue returns the first value cell in the block, for blocks
// that hold a single unlabeled property (like the assignment
// instructions).
func (b PropertyBlock) FirstValue() (*goquery.Selection, bool) {
	value := b.sel.Find(propertyValueSelector).First()
	if value.Length() == 0 {
		return nil, false
	}
	return value, true
}
