package exercise

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ilias-scraper/lib/scrapers/ilias"
)

// stubTransport serves canned pages and records every exchange.
// Multipart bodies are drained at post time, the way a real transport
// would consume them.
type stubTransport struct {
	pages map[ilias.Querypath]string

	getCalls  []ilias.Querypath
	formPosts []recordedForm
	partPosts []recordedMultipart
}

type recordedForm struct {
	querypath ilias.Querypath
	form      url.Values
}

type recordedPart struct {
	name     string
	fileName string
	body     string
}

type recordedMultipart struct {
	querypath ilias.Querypath
	parts     []recordedPart
}

func (s *stubTransport) Get(ctx context.Context, querypath ilias.Querypath) (*goquery.Document, error) {
	s.getCalls = append(s.getCalls, querypath)

	page, ok := s.pages[querypath]
	if !ok {
		return nil, fmt.Errorf("stub transport has no page for %q", querypath)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func (s *stubTransport) PostForm(ctx context.Context, querypath ilias.Querypath, form url.Values) error {
	s.formPosts = append(s.formPosts, recordedForm{querypath: querypath, form: form})
	return nil
}

func (s *stubTransport) PostMultipart(ctx context.Context, querypath ilias.Querypath, fields []ilias.MultipartField) error {
	parts := make([]recordedPart, len(fields))
	for i, f := range fields {
		body := f.Value
		if f.Reader != nil {
			drained, err := io.ReadAll(f.Reader)
			if err != nil {
				return err
			}
			body = string(drained)
		}
		parts[i] = recordedPart{name: f.Name, fileName: f.FileName, body: body}
	}

	s.partPosts = append(s.partPosts, recordedMultipart{querypath: querypath, parts: parts})
	return nil
}

func (s *stubTransport) networkCalls() int {
	return len(s.getCalls) + len(s.formPosts) + len(s.partPosts)
}

func parseFixture(page string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		panic(err)
	}
	return doc.Selection
}
