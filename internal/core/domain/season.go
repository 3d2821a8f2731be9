package domain

import "time"

// Season is the calendar-month bucket a track record falls into.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// Seasons lists every season in calendar order. Zones are emitted in this order.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// DefaultZoneColor is used for any season label missing from seasonColors.
const DefaultZoneColor = "black"

var seasonColors = map[Season]string{
	SeasonWinter: "blue",
	SeasonSpring: "green",
	SeasonSummer: "red",
	SeasonAutumn: "orange",
}

// SeasonForMonth maps a calendar month onto its season. Hemisphere and year
// are ignored.
//
//	Dec, Jan, Feb → Winter
//	Mar, Apr, May → Spring
//	Jun, Jul, Aug → Summer
//	Sep, Oct, Nov → Autumn
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// SeasonOf returns the season of t, read from t's own calendar fields.
func SeasonOf(t time.Time) Season {
	return SeasonForMonth(t.Month())
}

// Color returns the map color assigned to the season.
func (s Season) Color() string {
	if c, ok := seasonColors[s]; ok {
		return c
	}
	return DefaultZoneColor
}

// Valid reports whether s is one of the four known seasons.
func (s Season) Valid() bool {
	_, ok := seasonColors[s]
	return ok
}

func (s Season) String() string { return string(s) }
