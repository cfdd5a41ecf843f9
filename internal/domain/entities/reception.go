package entities

import "time"

// DayCategory is one of the eight reception-hours buckets used by the
// dataset: the seven weekdays plus national holidays.
type DayCategory string

const (
	DayMonday    DayCategory = "月"
	DayTuesday   DayCategory = "火"
	DayWednesday DayCategory = "水"
	DayThursday  DayCategory = "木"
	DayFriday    DayCategory = "金"
	DaySaturday  DayCategory = "土"
	DaySunday    DayCategory = "日"
	DayHoliday   DayCategory = "祝"
)

// DayCategories lists all categories in dataset column order.
var DayCategories = []DayCategory{
	DayMonday, DayTuesday, DayWednesday, DayThursday,
	DayFriday, DaySaturday, DaySunday, DayHoliday,
}

// time.Weekday is Sunday-based.
var weekdayCategories = [7]DayCategory{
	DaySunday, DayMonday, DayTuesday, DayWednesday,
	DayThursday, DayFriday, DaySaturday,
}

// DayCategoryFor resolves the weekday category for an instant. The holiday
// category is never selected here: the dataset carries holiday hours but
// there is no holiday calendar to resolve against.
func DayCategoryFor(t time.Time) DayCategory {
	return weekdayCategories[t.Weekday()]
}

// Reception status labels, preserved verbatim from the source dataset
// conventions.
const (
	StatusAccepting   = "🟢 受付中"
	StatusClosingSoon = "🟠 もうすぐ受付終了"
	StatusUnknown     = "受付時間不明/受付外"
)
