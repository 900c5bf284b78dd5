// Package season implements the canonical-start-year ↔ platform-native
// season year normalizer and the related season rollover logic for
// get_user_session's currentSeasons map.
package season

import (
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// ToPlatformYear converts a canonical start year into the year value the
// upstream platform API expects. Basketball/hockey seasons are named by
// their end year upstream (e.g. the 2024-25 NBA season is "2025" to
// ESPN); football/baseball are named by their start year.
func ToPlatformYear(canonical int, sport model.Sport) int {
	if sport == model.SportBasketball || sport == model.SportHockey {
		return canonical + 1
	}
	return canonical
}

// ToCanonicalYear is ToPlatformYear's inverse, used to derive friendly
// labels like "2024-25" from a platform-native year.
func ToCanonicalYear(platformYear int, sport model.Sport) int {
	if sport == model.SportBasketball || sport == model.SportHockey {
		return platformYear - 1
	}
	return platformYear
}

// Label renders a canonical start year as the human label the sport
// prefers: a bare "YYYY" for football/baseball, "YYYY-YY" for the
// split-calendar sports.
func Label(canonical int, sport model.Sport) string {
	if sport == model.SportBasketball || sport == model.SportHockey {
		endYY := (canonical + 1) % 100
		return pad2(canonical) + "-" + pad2FromYY(endYY)
	}
	return itoa(canonical)
}

// rolloverMonth is the US-Eastern calendar month (1-12) in which a
// sport's upcoming season becomes "current".
var rolloverMonth = map[model.Sport]time.Month{
	model.SportBaseball:   time.February,
	model.SportFootball:   time.July,
	model.SportBasketball: time.August,
	model.SportHockey:     time.August,
}

// CurrentSeason returns the canonical start year that is "current" for a
// sport given a wall-clock time interpreted in US-Eastern, applying the
// per-sport rollover month.
func CurrentSeason(sport model.Sport, now time.Time) int {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	nowET := now.In(loc)
	rollover := rolloverMonth[sport]
	year := nowET.Year()
	if nowET.Month() < rollover {
		year--
	}
	return year
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func pad2(n int) string { return itoa(n) }

func pad2FromYY(yy int) string {
	if yy < 10 {
		return "0" + itoa(yy)
	}
	return itoa(yy)
}
