package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// force the timezone to the portal's locale so that relative dates
// ("Heute, 14:00") resolve to the same instant no matter where the
// process happens to run
func Now() time.Time {
	return time.Now().In(Location)
}
