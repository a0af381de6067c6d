package ilias

import (
	"context"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// MultipartField is one part of a multipart post: either a file part
// (Reader and FileName set) or a plain text field (Value set).
type MultipartField struct {
	Name     string
	FileName string
	Value    string
	Reader   io.Reader
}

// Transport performs authenticated HTTP exchanges against the portal on
// behalf of the scraping core. Session handling, retries and timeouts
// live behind this interface; the core only sees parsed documents and
// pass-through transport errors. Implemented by core.Client, stubbed in
// tests.
type Transport interface {
	// Get fetches the page at the querypath and returns its parsed
	// document.
	Get(ctx context.Context, querypath Querypath) (*goquery.Document, error)

	// PostForm submits a form-encoded body to the querypath.
	PostForm(ctx context.Context, querypath Querypath, form url.Values) error

	// PostMultipart submits a multipart body to the querypath, keeping
	// the given field order.
	PostMultipart(ctx context.Context, querypath Querypath, fields []MultipartField) error
}
