package ilias

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stubTransport serves canned pages and records every exchange, so
// tests can assert fetch counts and posted bodies.
type stubTransport struct {
	pages map[Querypath]string

	getCalls  []Querypath
	formPosts []recordedForm
	partPosts []recordedMultipart
}

type recordedForm struct {
	querypath Querypath
	form      url.Values
}

type recordedMultipart struct {
	querypath Querypath
	fields    []MultipartField
}

func (s *stubTransport) Get(ctx context.Context, querypath Querypath) (*goquery.Document, error) {
	s.getCalls = append(s.getCalls, querypath)

	page, ok := s.pages[querypath]
	if !ok {
		return nil, fmt.Errorf("stub transport has no page for %q", querypath)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func (s *stubTransport) PostForm(ctx context.Context, querypath Querypath, form url.Values) error {
	s.formPosts = append(s.formPosts, recordedForm{querypath: querypath, form: form})
	return nil
}

func (s *stubTransport) PostMultipart(ctx context.Context, querypath Querypath, fields []MultipartField) error {
	s.partPosts = append(s.partPosts, recordedMultipart{querypath: querypath, fields: fields})
	return nil
}

func (s *stubTransport) networkCalls() int {
	return len(s.getCalls) + len(s.formPosts) + len(s.partPosts)
}
