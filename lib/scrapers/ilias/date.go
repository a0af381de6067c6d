package ilias

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ilias-scraper/lib/textutil"
	"ilias-scraper/lib/timezone"
)

// The portal abbreviates month names and localizes some of them per UI
// language. Index 0 is January.
var monthNames = [12][]string{
	{"Jan"},
	{"Feb"},
	{"Mär", "Mar"},
	{"Apr"},
	{"Mai", "May"},
	{"Jun"},
	{"Jul"},
	{"Aug"},
	{"Sep"},
	{"Okt", "Oct"},
	{"Nov"},
	{"Dez", "Dec"},
}

// Dates close to the current day render as a relative token instead of
// an absolute date.
var relativeDays = map[string]int{
	"Gestern": -1, "Yesterday": -1,
	"Heute": 0, "Today": 0,
	"Morgen": 1, "Tomorrow": 1,
}

var absoluteDateRegex = regexp.MustCompile(`^(\d{1,2})\. (\p{L}+) (\d+)$`)

// ParseDateTime parses the portal's date/time text ("Heute, 14:00",
// "14. Mär 2024, 09:00") into an absolute instant, resolving relative
// tokens against the current portal-local time.
func ParseDateTime(text string) (time.Time, error) {
	return ParseDateTimeAt(text, timezone.Now())
}

// ParseDateTimeAt is ParseDateTime against an explicit current instant.
// The result is in now's location.
func ParseDateTimeAt(text string, now time.Time) (time.Time, error) {
	datePart, timePart, found := strings.Cut(text, ",")
	if !found {
		return time.Time{}, fmt.Errorf("%w: no date/time separator in %q", ErrDateGrammar, text)
	}
	datePart = textutil.CollapseSpace(datePart)
	timePart = textutil.CollapseSpace(timePart)

	clock, err := time.Parse("15:04", timePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q: %v", ErrDateGrammar, timePart, err)
	}

	var year, day int
	var month time.Month

	if offset, ok := relativeDays[datePart]; ok {
		year, month, day = now.AddDate(0, 0, offset).Date()
	} else {
		groups := absoluteDateRegex.FindStringSubmatch(datePart)
		if groups == nil {
			return time.Time{}, fmt.Errorf("%w: date %q is neither a relative token nor D. MONTH YYYY", ErrDateGrammar, datePart)
		}
		day, err = strconv.Atoi(groups[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: bad day in %q: %v", ErrDateGrammar, datePart, err)
		}
		month, err = parseMonth(groups[2])
		if err != nil {
			return time.Time{}, err
		}
		year, err = strconv.Atoi(groups[3])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: bad year in %q: %v", ErrDateGrammar, datePart, err)
		}
	}

	// composing through time.Date resolves instants that fall into the
	// daylight-saving gap to a valid instant instead of failing
	composed := time.Date(year, month, day, clock.Hour(), clock.Minute(), 0, 0, now.Location())

	// during the fall-back transition the wall clock repeats an hour and
	// time.Date picks the later occurrence; the portal means the
	// earliest instant showing that wall time
	earlier := composed.Add(-time.Hour)
	if earlier.Day() == composed.Day() &&
		earlier.Hour() == composed.Hour() &&
		earlier.Minute() == composed.Minute() {
		return earlier, nil
	}

	return composed, nil
}

func parseMonth(name string) (time.Month, error) {
	for i, spellings := range monthNames {
		for _, s := range spellings {
			if name == s {
				return time.January + time.Month(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unrecognized month %q", ErrDateGrammar, name)
}
