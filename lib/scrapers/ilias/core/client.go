package core

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"

	"ilias-scraper/lib/scrapers/ilias"
	"ilias-scraper/lib/telemetry"
)

var LoginFailed = fmt.Errorf("Failed to login to your account.")

// Client is the transport collaborator: it owns the authenticated
// session against the portal and turns querypaths into parsed documents
// or posted bodies. All scraping and mutation logic lives above it.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

var _ ilias.Transport = (*Client)(nil)

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/ilias/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// LoginUsernamePassword authenticates the session through the portal's
// standard login form.
func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	loginPath := fmt.Sprintf("/login.php?client_id=%s&cmd=force_login&lang=en", ilias.ClientId)
	res, err := c.Http.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	form := doc.Find("form:has(input[name=username])").First()
	action := form.AttrOr("action", "")
	if action == "" {
		span.SetStatus(codes.Error, "failed to find login form")
		return fmt.Errorf("could not find login form on %s", loginPath)
	}

	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
			"cmd[doStandardAuthentication]": "Log In",
		}).
		Post(action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse post-login html")
		return err
	}

	// a failed login renders the login form again
	if len(doc.Find("input[name=username]").Nodes) > 0 {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	return nil
}

// Get implements ilias.Transport.
func (c *Client) Get(ctx context.Context, querypath ilias.Querypath) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(querypath.RequestTarget())
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", querypath, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", querypath, res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", querypath, err)
	}
	return doc, nil
}

// PostForm implements ilias.Transport.
func (c *Client) PostForm(ctx context.Context, querypath ilias.Querypath, form url.Values) error {
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(querypath.RequestTarget())
	if err != nil {
		return fmt.Errorf("post form %s: %w", querypath, err)
	}
	if res.IsError() {
		return fmt.Errorf("post form %s: unexpected status %s", querypath, res.Status())
	}
	return nil
}

// PostMultipart implements ilias.Transport. Text fields travel as
// multipart parts too so the portal sees them in the given order.
func (c *Client) PostMultipart(ctx context.Context, querypath ilias.Querypath, fields []ilias.MultipartField) error {
	parts := make([]*resty.MultipartField, len(fields))
	for i, f := range fields {
		reader := f.Reader
		if reader == nil {
			reader = strings.NewReader(f.Value)
		}
		parts[i] = &resty.MultipartField{
			Param:    f.Name,
			FileName: f.FileName,
			Reader:   reader,
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetMultipartFields(parts...).
		Post(querypath.RequestTarget())
	if err != nil {
		return fmt.Errorf("post multipart %s: %w", querypath, err)
	}
	if res.IsError() {
		return fmt.Errorf("post multipart %s: unexpected status %s", querypath, res.Status())
	}
	return nil
}
