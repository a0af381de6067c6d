package ilias

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const infoScreenFixture = `
<div id="ilContentContainer">
	<div class="ilInfoScreenSec">
		<h2 class="ilHeader">Terminplan</h2>
		<div class="form-group">
			<div class="il_InfoScreenProperty"> Startzeit </div>
			<div class="il_InfoScreenPropertyValue">14. Mär 2024, 09:00</div>
		</div>
		<div class="form-group">
			<div class="il_InfoScreenProperty">Abgabetermin</div>
			<div class="il_InfoScreenPropertyValue">28. Mär 2024, 23:59</div>
		</div>
	</div>
	<div class="ilInfoScreenSec">
		<h2 class="ilHeader">Files</h2>
		<div class="form-group">
			<div>a.txt</div>
			<div><a href="/download?x">Download</a></div>
		</div>
	</div>
</div>`

func parseFixture(t *testing.T, page string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc.Selection
}

func TestPropertyBlocks(t *testing.T) {
	blocks, err := PropertyBlocks(parseFixture(t, infoScreenFixture))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, "Terminplan", blocks[0].Heading)
	require.Equal(t, "Files", blocks[1].Heading)
}

func TestPropertyBlocksHeadingMissing(t *testing.T) {
	_, err := PropertyBlocks(parseFixture(t, `<div class="ilInfoScreenSec"><div class="form-group"></div></div>`))
	require.ErrorIs(t, err, ErrStructuralMismatch)
}

func TestFindBlockMatchesEitherLocale(t *testing.T) {
	blocks, err := PropertyBlocks(parseFixture(t, infoScreenFixture))
	require.NoError(t, err)

	// the fixture has the german schedule heading and the english files
	// heading, lookups carry both spellings
	_, ok := FindBlock(blocks, []string{"Terminplan", "Schedule"})
	require.True(t, ok)
	_, ok = FindBlock(blocks, []string{"Dateien", "Files"})
	require.True(t, ok)

	// absent block is not an error at this layer
	_, ok = FindBlock(blocks, []string{"Ihre Einreichung", "Your Submission"})
	require.False(t, ok)

	_, err = MandatoryBlock(blocks, []string{"Ihre Einreichung", "Your Submission"})
	require.ErrorIs(t, err, ErrStructuralMismatch)
}

func TestBlockValue(t *testing.T) {
	blocks, err := PropertyBlocks(parseFixture(t, infoScreenFixture))
	require.NoError(t, err)

	schedule, err := MandatoryBlock(blocks, []string{"Terminplan", "Schedule"})
	require.NoError(t, err)

	start, err := schedule.Value([]string{"Startzeit", "Start Time"})
	require.NoError(t, err)
	require.Equal(t, "14. Mär 2024, 09:00", start)

	end, err := schedule.Value([]string{"Abgabetermin", "Edit Until"})
	require.NoError(t, err)
	require.Equal(t, "28. Mär 2024, 23:59", end)
}

func TestBlockValueLabelMissing(t *testing.T) {
	blocks, err := PropertyBlocks(parseFixture(t, infoScreenFixture))
	require.NoError(t, err)

	schedule, err := MandatoryBlock(blocks, []string{"Terminplan", "Schedule"})
	require.NoError(t, err)

	// block found but no row label matches: always a hard error, even
	// for fields that would otherwise be optional
	_, err = schedule.Value([]string{"Einreichungsschluss", "Submission Deadline"})
	require.ErrorIs(t, err, ErrLocalizationMismatch)
}

func TestBlockRowsArePositional(t *testing.T) {
	blocks, err := PropertyBlocks(parseFixture(t, infoScreenFixture))
	require.NoError(t, err)

	files, ok := FindBlock(blocks, []string{"Dateien", "Files"})
	require.True(t, ok)
	require.Equal(t, 1, files.Rows().Length())

	row := files.Rows().Eq(0)
	require.Equal(t, "a.txt", row.Children().Eq(0).Text())
}
