package entities

// Facility represents one clinic row of the merged dataset
type Facility struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Website     string `json:"website,omitempty"`
	Departments string `json:"departments"` // aggregated specialty list, " / " separated

	// Location is nil when the source row had a missing or unparseable
	// coordinate. Such rows stay in the dataset but never appear in
	// search results.
	Location *Location `json:"location,omitempty"`

	// ReceptionHours maps a day category to that day's reception window.
	// A missing key means no reception that day.
	ReceptionHours map[DayCategory]ReceptionWindow `json:"reception_hours,omitempty"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReceptionWindow holds the raw start/end time strings for one day category.
// Values come straight from the dataset and may be in any of the supported
// free-form shapes ("9:30", "0930", "930") or malformed.
type ReceptionWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Window returns the reception window for a day category
func (f *Facility) Window(day DayCategory) (ReceptionWindow, bool) {
	w, ok := f.ReceptionHours[day]
	return w, ok
}
