package services

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
)

// nextOpeningLookaheadDays bounds the scan for the next reception start.
const nextOpeningLookaheadDays = 7

var (
	jstOnce sync.Once
	jstLoc  *time.Location
)

// JST returns the Asia/Tokyo location the facility dataset is expressed in.
func JST() *time.Location {
	jstOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Tokyo")
		if err != nil {
			loc = time.FixedZone("JST", 9*60*60)
		}
		jstLoc = loc
	})
	return jstLoc
}

// TimeOfDay is a wall-clock time of day parsed from a dataset time string.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses the free-form time strings that occur in the merged
// dataset: "9:30" / "09:30", and bare digit runs "930" / "0930". Anything
// malformed or out of range reports not-ok; source data is messy and a bad
// value must degrade to "unknown", never abort a query.
func ParseTimeOfDay(raw string) (TimeOfDay, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TimeOfDay{}, false
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) >= 2 {
			hh, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			mm, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err1 != nil || err2 != nil {
				return TimeOfDay{}, false
			}
			if hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59 {
				return TimeOfDay{Hour: hh, Minute: mm}, true
			}
			// Out-of-range values fall through to the digit form, which
			// re-checks the range and rejects them.
		}
	}

	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 3 {
		d = "0" + d
	}
	if len(d) != 4 {
		return TimeOfDay{}, false
	}
	hh, err1 := strconv.Atoi(d[:2])
	mm, err2 := strconv.Atoi(d[2:])
	if err1 != nil || err2 != nil {
		return TimeOfDay{}, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hh, Minute: mm}, true
}

// ReceptionService evaluates a facility's weekly reception windows against a
// reference instant. All computation is done in the dataset's local time
// zone; "now" is always an explicit parameter so results are deterministic
// under test.
type ReceptionService struct {
	loc *time.Location
}

// NewReceptionService creates a reception service in Asia/Tokyo.
func NewReceptionService() *ReceptionService {
	return &ReceptionService{loc: JST()}
}

// Location returns the time zone the service evaluates windows in.
func (s *ReceptionService) Location() *time.Location {
	return s.loc
}

// MinutesToClose returns the whole minutes remaining until today's reception
// window closes, when now falls inside it. A window whose end precedes its
// start crosses midnight; instants past midnight but before the rolled-over
// end belong to the previous day's window.
func (s *ReceptionService) MinutesToClose(f *entities.Facility, now time.Time) (int, bool) {
	now = now.In(s.loc)
	if mins, ok := s.minutesWithinWindow(f, now, 0); ok {
		return mins, true
	}
	return s.minutesWithinWindow(f, now, -1)
}

func (s *ReceptionService) minutesWithinWindow(f *entities.Facility, now time.Time, dayOffset int) (int, bool) {
	day := now.AddDate(0, 0, dayOffset)
	start, end, ok := s.windowBounds(f, day)
	if !ok {
		return 0, false
	}
	if now.Before(start) || now.After(end) {
		return 0, false
	}
	mins := int(end.Sub(now) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	return mins, true
}

// windowBounds resolves the reception window of day's category into concrete
// instants on day's calendar date, rolling the end into the next day when it
// does not follow the start.
func (s *ReceptionService) windowBounds(f *entities.Facility, day time.Time) (time.Time, time.Time, bool) {
	w, ok := f.Window(entities.DayCategoryFor(day))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	st, okStart := ParseTimeOfDay(w.Start)
	et, okEnd := ParseTimeOfDay(w.End)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), st.Hour, st.Minute, 0, 0, s.loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), et.Hour, et.Minute, 0, 0, s.loc)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

// StatusLabel derives the reception status for a MinutesToClose result.
func StatusLabel(minutesToClose int, accepting bool, soonCloseThresholdMin int) string {
	if !accepting {
		return entities.StatusUnknown
	}
	if minutesToClose <= soonCloseThresholdMin {
		return entities.StatusClosingSoon
	}
	return entities.StatusAccepting
}

// NextReceptionStart scans up to seven calendar days ahead for the next
// instant the facility starts accepting. While a window is in progress —
// today's, or the previous day's rolled past midnight — there is no "next"
// opening.
func (s *ReceptionService) NextReceptionStart(f *entities.Facility, now time.Time) (time.Time, bool) {
	now = now.In(s.loc)

	// Past-midnight instants inside the previous day's rolled-over window
	// count as currently accepting.
	if _, ok := s.minutesWithinWindow(f, now, -1); ok {
		return time.Time{}, false
	}

	for offset := 0; offset < nextOpeningLookaheadDays; offset++ {
		day := now.AddDate(0, 0, offset)
		start, end, ok := s.windowBounds(f, day)
		if !ok {
			continue
		}

		if offset == 0 {
			if now.Before(start) {
				return start, true
			}
			if !now.After(end) {
				// Currently accepting.
				return time.Time{}, false
			}
			continue
		}
		return start, true
	}
	return time.Time{}, false
}

// NextReceptionLabel renders a next reception start as a user-facing label,
// e.g. "本日 09:00〜", "明日 10:30〜", "金曜日 09:00〜", prefixed with
// "まもなく " when the start is within soonStartThresholdMin minutes.
// A nil start renders as the empty string.
func (s *ReceptionService) NextReceptionLabel(next *time.Time, now time.Time, soonStartThresholdMin int) string {
	if next == nil {
		return ""
	}

	nowLocal := now.In(s.loc)
	nextLocal := next.In(s.loc)

	deltaMin := int(nextLocal.Sub(nowLocal) / time.Minute)
	hhmm := nextLocal.Format("15:04")

	var day string
	switch {
	case sameDate(nextLocal, nowLocal):
		day = "本日"
	case sameDate(nextLocal, nowLocal.AddDate(0, 0, 1)):
		day = "明日"
	default:
		day = string(entities.DayCategoryFor(nextLocal)) + "曜日"
	}

	prefix := ""
	if deltaMin >= 0 && deltaMin <= soonStartThresholdMin {
		prefix = "まもなく "
	}
	return prefix + day + " " + hhmm + "〜"
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
