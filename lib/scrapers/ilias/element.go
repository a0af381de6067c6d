package ilias

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ClientId is the portal installation the deep links point into.
const ClientId = "produktiv"

// Element is the contract every parseable portal object implements: it
// can populate itself from the root of its detail page. Parsing must be
// deterministic for a given fragment and must not resolve nested
// references; linked objects stay lazy until a caller asks for them.
type Element interface {
	ParseRoot(ctx context.Context, root *goquery.Selection, tx Transport) error
}

// elementPtr constrains PT to be a pointer to T implementing Element,
// so generic code can allocate and parse a T without reflection.
type elementPtr[T any] interface {
	*T
	Element
}

// ElementQuerypath builds the deep-link querypath for an element from
// its type tag and bare numeric id.
func ElementQuerypath(typeTag, id string) Querypath {
	return Querypath(fmt.Sprintf("goto.php?target=%s_%s&client_id=%s", typeTag, id, ClientId))
}

// FetchElement fetches the document at the querypath and parses a fresh
// T from its root.
func FetchElement[T any, PT elementPtr[T]](ctx context.Context, tx Transport, querypath Querypath) (*T, error) {
	doc, err := tx.Get(ctx, querypath)
	if err != nil {
		return nil, err
	}

	var value T
	err = PT(&value).ParseRoot(ctx, doc.Selection, tx)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
