package entities

import "time"

// SearchQuery holds the parameters of one clinic search. Keyword policy
// (which departments to exclude by default, mental-health handling) is the
// caller's responsibility; the query carries already-resolved lists.
type SearchQuery struct {
	RadiusKm float64 `json:"radius_km"`

	// DepartmentKeywords are OR-matched substrings against the aggregated
	// specialty list, in caller preference order. The order drives the
	// primary sort key.
	DepartmentKeywords []string `json:"department_keywords,omitempty"`

	ExcludeDepartmentKeywords []string `json:"exclude_department_keywords,omitempty"`
	ExcludeNameKeywords       []string `json:"exclude_name_keywords,omitempty"`

	OnlyAcceptingNow bool `json:"only_accepting_now"`

	SoonCloseThresholdMin int `json:"soon_close_threshold_min"`
	SoonStartThresholdMin int `json:"soon_start_threshold_min"`

	// Limit truncates the result set when positive; zero or negative means
	// unlimited.
	Limit int `json:"limit"`
}

// ClinicSearchResult is one ranked row of a search response: a facility plus
// the fields derived against the instant the query executed.
type ClinicSearchResult struct {
	Facility *Facility `json:"facility"`

	DistanceKm      float64 `json:"distance_km"`
	ReceptionStatus string  `json:"reception_status"`

	// MinutesToClose is set only while the facility is currently accepting.
	MinutesToClose *int `json:"minutes_to_close,omitempty"`

	// NextReceptionStart is absent when the facility is already accepting or
	// when no window resolves within the lookahead.
	NextReceptionStart *time.Time `json:"next_reception_start,omitempty"`
	NextReceptionLabel string     `json:"next_reception_label,omitempty"`
}
