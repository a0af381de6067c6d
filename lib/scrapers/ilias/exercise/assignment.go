package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"

	"ilias-scraper/lib/htmlutil"
	"ilias-scraper/lib/scrapers/ilias"
	"ilias-scraper/lib/timezone"
)

// AssignmentTypeId is the portal's type tag for exercise assignments,
// used to synthesize deep links from bare numeric ids.
const AssignmentTypeId = "ass"

// accepted heading and label spellings, one per supported UI language
var (
	instructionHeadings  = []string{"Arbeitsanweisung", "Work Instructions"}
	scheduleHeadings     = []string{"Terminplan", "Schedule"}
	attachmentHeadings   = []string{"Dateien", "Files"}
	submissionHeadings   = []string{"Ihre Einreichung", "Your Submission"}
	startTimeLabels      = []string{"Startzeit", "Start Time"}
	endTimeLabels        = []string{"Abgabetermin", "Edit Until"}
	submittedFilesLabels = []string{"Abgegebene Dateien", "Submitted Files"}
)

const assignmentHeaderSelector = ".ilAssignmentHeader"

// attachment rows render name and download columns; anything narrower
// is a decorative separator
const attachmentRowMinColumns = 2

var instructionConverter = md.NewConverter("", true, nil)

// Assignment is one exercise assignment as rendered on its detail
// page. It is immutable after parsing except for the embedded
// submission reference, which resolves lazily on first use.
type Assignment struct {
	Name         string
	Instructions string
	// the window [SubmissionStart, SubmissionEnd] in which the portal
	// accepts uploads
	SubmissionStart time.Time
	SubmissionEnd   time.Time
	Attachments     []ilias.File

	Submission ilias.Reference[AssignmentSubmission, *AssignmentSubmission]
}

// AssignmentQuerypath builds the deep link for an assignment id.
func AssignmentQuerypath(id string) ilias.Querypath {
	return ilias.ElementQuerypath(AssignmentTypeId, id)
}

// FetchAssignment fetches and parses the assignment with the given
// numeric id.
func FetchAssignment(ctx context.Context, tx ilias.Transport, id string) (*Assignment, error) {
	return ilias.FetchElement[Assignment](ctx, tx, AssignmentQuerypath(id))
}

// ParseRoot implements ilias.Element. The submission reference is left
// unresolved; resolving it is a separate, explicit page fetch.
func (a *Assignment) ParseRoot(ctx context.Context, root *goquery.Selection, tx ilias.Transport) error {
	ctx, span := tracer.Start(ctx, "Assignment:ParseRoot")
	defer span.End()

	header := root.Find(assignmentHeaderSelector).First()
	if header.Length() == 0 {
		err := fmt.Errorf("%w: no assignment header on page", ilias.ErrStructuralMismatch)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to find assignment name")
		return err
	}
	name := htmlutil.CleanText(header)

	blocks, err := ilias.PropertyBlocks(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to group info screens")
		return err
	}

	instructions := ""
	if block, ok := ilias.FindBlock(blocks, instructionHeadings); ok {
		if value, ok := block.FirstValue(); ok {
			instructions = instructionConverter.Convert(value)
		}
	}

	start, end, err := parseSchedule(blocks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse submission window")
		return err
	}

	attachments, err := parseAttachments(blocks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse attachments")
		return err
	}

	submissionQuerypath, err := findSubmissionQuerypath(blocks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate submission page link")
		return err
	}

	a.Name = name
	a.Instructions = instructions
	a.SubmissionStart = start
	a.SubmissionEnd = end
	a.Attachments = attachments
	a.Submission = ilias.NewReference[AssignmentSubmission](submissionQuerypath)
	return nil
}

func parseSchedule(blocks []ilias.PropertyBlock) (start, end time.Time, err error) {
	schedule, err := ilias.MandatoryBlock(blocks, scheduleHeadings)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startText, err := schedule.Value(startTimeLabels)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err = ilias.ParseDateTime(startText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endText, err := schedule.Value(endTimeLabels)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ilias.ParseDateTime(endText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// parseAttachments reads the optional files block positionally: column
// 0 is the filename, column 1 holds the download link.
func parseAttachments(blocks []ilias.PropertyBlock) ([]ilias.File, error) {
	block, ok := ilias.FindBlock(blocks, attachmentHeadings)
	if !ok {
		return nil, nil
	}

	var files []ilias.File
	var parseErr error

	block.Rows().EachWithBreak(func(_ int, row *goquery.Selection) bool {
		columns := row.Children()
		if columns.Length() < attachmentRowMinColumns {
			slog.Debug("skipping attachment separator row", "columns", columns.Length())
			return true
		}

		anchor, ok := htmlutil.FirstAnchor(columns.Eq(1))
		if !ok {
			parseErr = fmt.Errorf("%w: attachment row has no download link", ilias.ErrStructuralMismatch)
			return false
		}
		download, err := ilias.CanonicalizeLink(anchor.Href)
		if err != nil {
			parseErr = err
			return false
		}

		files = append(files, ilias.File{
			Name:     htmlutil.CleanText(columns.Eq(0)),
			Download: download,
		})
		return true
	})

	return files, parseErr
}

// findSubmissionQuerypath returns the link to the submission page, or
// "" when the portal rendered no submission block or no link (outside
// the submission window).
func findSubmissionQuerypath(blocks []ilias.PropertyBlock) (ilias.Querypath, error) {
	block, ok := ilias.FindBlock(blocks, submissionHeadings)
	if !ok {
		return "", nil
	}

	value, err := block.ValueSelection(submittedFilesLabels)
	if err != nil {
		return "", err
	}

	anchor, ok := htmlutil.FirstAnchor(value)
	if !ok {
		return "", nil
	}
	return ilias.CanonicalizeLink(anchor.Href)
}

// ResolveSubmission fetches and parses the submission page on first
// call; afterwards it returns the cached value.
func (a *Assignment) ResolveSubmission(ctx context.Context, tx ilias.Transport) (*AssignmentSubmission, error) {
	return a.Submission.Resolve(ctx, tx)
}

// IsActive reports whether the submission window is currently open,
// inclusive at both boundaries.
func (a *Assignment) IsActive() bool {
	now := timezone.Now()
	return !now.Before(a.SubmissionStart) && !now.After(a.SubmissionEnd)
}
