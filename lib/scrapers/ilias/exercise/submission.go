package exercise

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ilias-scraper/lib/htmlutil"
	"ilias-scraper/lib/scrapers/ilias"
)

const (
	submissionRowSelector  = "form tbody tr"
	deleteFormSelector     = "div#ilContentContainer form"
	uploadButtonSelector   = "nav div.navbar-header button"
	uploadFormSelector     = "form"
	uploadActionAttr       = "data-action"
	submissionRowMinColumn = 4
)

// verbatim button captions the portal expects in mutation requests
const (
	deleteCommandValue = "Löschen"
	uploadCommandValue = "Hochladen"
)

// the portal requires the field to be present but ignores its content
const uploadFileHash = "aaaa"

// AssignmentSubmission is the student's submission page for one
// assignment: the files handed in so far plus the form endpoints for
// changing them.
type AssignmentSubmission struct {
	Files []ilias.File

	deleteQuerypath ilias.Querypath
	uploadQuerypath ilias.Querypath
}

// ParseRoot implements ilias.Element. Locating the upload endpoint
// costs one extra page fetch because the portal serves the upload form
// inside a separate dialog document.
func (s *AssignmentSubmission) ParseRoot(ctx context.Context, root *goquery.Selection, tx ilias.Transport) error {
	ctx, span := tracer.Start(ctx, "AssignmentSubmission:ParseRoot")
	defer span.End()

	files, err := parseSubmittedFiles(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse submitted file rows")
		return err
	}

	deleteQuerypath, err := findDeleteQuerypath(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate delete form")
		return err
	}

	uploadQuerypath, err := findUploadQuerypath(ctx, root, tx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate upload form")
		return err
	}

	s.Files = files
	s.deleteQuerypath = deleteQuerypath
	s.uploadQuerypath = uploadQuerypath
	return nil
}

// parseSubmittedFiles reads the file table positionally. Column 0
// carries the selection checkbox whose value is the file id, column 1
// the name, the last column the download link. The submission date
// sits somewhere between name and download depending on the portal's
// column configuration, so the columns in between are scanned for the
// first parseable date.
func parseSubmittedFiles(root *goquery.Selection) ([]ilias.File, error) {
	var files []ilias.File
	var parseErr error

	root.Find(submissionRowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		columns := row.Children()
		if columns.Length() < submissionRowMinColumn {
			slog.Debug("skipping submission separator row", "columns", columns.Length())
			return true
		}

		id, ok := columns.Eq(0).Find("input").Attr("value")
		if !ok || id == "" {
			parseErr = fmt.Errorf("%w: submission row has no selection checkbox", ilias.ErrStructuralMismatch)
			return false
		}

		date, err := scanRowDate(columns)
		if err != nil {
			parseErr = err
			return false
		}

		anchor, ok := htmlutil.FirstAnchor(columns.Last())
		if !ok {
			parseErr = fmt.Errorf("%w: submission row has no download link", ilias.ErrStructuralMismatch)
			return false
		}
		download, err := ilias.CanonicalizeLink(anchor.Href)
		if err != nil {
			parseErr = err
			return false
		}

		files = append(files, ilias.File{
			Name:     htmlutil.CleanText(columns.Eq(1)),
			Id:       id,
			Download: download,
			Date:     date,
		})
		return true
	})

	return files, parseErr
}

// scanRowDate tries the columns between the file name and the trailing
// action columns until one parses as a date.
func scanRowDate(columns *goquery.Selection) (date time.Time, err error) {
	last := columns.Length() - 2
	for i := 2; i <= last; i++ {
		date, err = ilias.ParseDateTime(htmlutil.CleanText(columns.Eq(i)))
		if err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("no date column in submission row: %w", err)
}

func findDeleteQuerypath(root *goquery.Selection) (ilias.Querypath, error) {
	action, ok := root.Find(deleteFormSelector).First().Attr("action")
	if !ok {
		return "", fmt.Errorf("%w: no file management form on submission page", ilias.ErrStructuralMismatch)
	}
	return ilias.CanonicalizeLink(action)
}

// findUploadQuerypath follows the toolbar button to the upload dialog
// and reads the form action out of the dialog document.
func findUploadQuerypath(ctx context.Context, root *goquery.Selection, tx ilias.Transport) (ilias.Querypath, error) {
	dialogHref, ok := root.Find(uploadButtonSelector).First().Attr(uploadActionAttr)
	if !ok {
		return "", fmt.Errorf("%w: no upload button on submission page", ilias.ErrStructuralMismatch)
	}
	dialogQuerypath, err := ilias.CanonicalizeLink(dialogHref)
	if err != nil {
		return "", err
	}

	dialog, err := tx.Get(ctx, dialogQuerypath)
	if err != nil {
		return "", fmt.Errorf("fetch upload dialog: %w", err)
	}

	action, ok := dialog.Find(uploadFormSelector).First().Attr("action")
	if !ok {
		return "", fmt.Errorf("%w: upload dialog has no form", ilias.ErrStructuralMismatch)
	}
	return ilias.CanonicalizeLink(action)
}

// DeleteFiles removes the given previously submitted files in a single
// form post. Every file must carry the id it was parsed with; files
// from other sources violate the call contract and fail before any
// request is made.
func (s *AssignmentSubmission) DeleteFiles(ctx context.Context, tx ilias.Transport, files []ilias.File) error {
	ctx, span := tracer.Start(ctx, "AssignmentSubmission:DeleteFiles")
	defer span.End()
	span.SetAttributes(attribute.Int("file_count", len(files)))

	for _, file := range files {
		if !file.Deletable() {
			err := fmt.Errorf("%w: file %q has no submission id", ilias.ErrCallerContract, file.Name)
			span.RecordError(err)
			span.SetStatus(codes.Error, "refusing delete without file id")
			return err
		}
	}

	form := url.Values{}
	for _, file := range files {
		form.Add("delivered[]", file.Id)
	}
	form.Set("cmd[deleteDelivered]", deleteCommandValue)

	if err := tx.PostForm(ctx, s.deleteQuerypath, form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete request failed")
		return err
	}
	return nil
}

// UploadFiles submits the given local files in a single multipart
// request. The portal accepts several files per request, each under an
// indexed field name.
func (s *AssignmentSubmission) UploadFiles(ctx context.Context, tx ilias.Transport, files []ilias.NamedLocalFile) error {
	ctx, span := tracer.Start(ctx, "AssignmentSubmission:UploadFiles")
	defer span.End()
	span.SetAttributes(attribute.Int("file_count", len(files)))

	var readers []io.ReadCloser
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	fields := make([]ilias.MultipartField, 0, len(files)+2)
	for i, file := range files {
		reader, err := file.Open()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open local file")
			return err
		}
		readers = append(readers, reader)

		fields = append(fields, ilias.MultipartField{
			Name:     fmt.Sprintf("deliver[%d]", i),
			FileName: file.Name,
			Reader:   reader,
		})
	}
	fields = append(fields,
		ilias.MultipartField{Name: "cmd[uploadFile]", Value: uploadCommandValue},
		ilias.MultipartField{Name: "ilfilehash", Value: uploadFileHash},
	)

	if err := tx.PostMultipart(ctx, s.uploadQuerypath, fields); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload request failed")
		return err
	}
	return nil
}
