package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

// clinicCategory marks clinic rows in the facility master.
const clinicCategory = "2"

// Merge joins the facility master with the per-specialty weekly-hours table
// into the canonical merged dataset. Only clinic rows are kept; each
// facility's specialties are deduplicated, sorted, and joined; per day
// category the start is the string-minimum and the end the string-maximum
// across that facility's specialty rows.
//
// The per-day min/max is lexicographic over cleaned strings, not a semantic
// time comparison. Zero-padded HH:MM values happen to sort correctly;
// unpadded ones would not. Inherited from the source pipeline and kept
// deliberately.
func Merge(master, hours *Table) (*Table, error) {
	if _, ok := master.Column(ColID); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("facility master is missing column %s", ColID))
	}
	if _, ok := master.Column(ColCategory); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("facility master is missing column %s", ColCategory))
	}
	if _, ok := hours.Column(ColID); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("hours table is missing column %s", ColID))
	}
	if _, ok := hours.Column(ColDeptName); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("hours table is missing column %s", ColDeptName))
	}

	type aggregate struct {
		specialties map[string]struct{}
		minStart    map[entities.DayCategory]string
		maxEnd      map[entities.DayCategory]string
	}

	aggregates := make(map[string]*aggregate)
	for _, row := range hours.Rows {
		id := hours.Value(row, ColID)
		if id == "" {
			continue
		}
		agg := aggregates[id]
		if agg == nil {
			agg = &aggregate{
				specialties: make(map[string]struct{}),
				minStart:    make(map[entities.DayCategory]string),
				maxEnd:      make(map[entities.DayCategory]string),
			}
			aggregates[id] = agg
		}

		if dept := hours.Value(row, ColDeptName); dept != "" {
			agg.specialties[dept] = struct{}{}
		}

		for _, day := range entities.DayCategories {
			if v := cleanTimeValue(hours.Value(row, string(day)+startSuffix)); v != "" {
				if cur, ok := agg.minStart[day]; !ok || v < cur {
					agg.minStart[day] = v
				}
			}
			if v := cleanTimeValue(hours.Value(row, string(day)+endSuffix)); v != "" {
				if cur, ok := agg.maxEnd[day]; !ok || v > cur {
					agg.maxEnd[day] = v
				}
			}
		}
	}

	header := append([]string{}, master.Header...)
	header = append(header, ColDepartments)
	for _, day := range entities.DayCategories {
		header = append(header, string(day)+startSuffix, string(day)+endSuffix)
	}

	latCol, hasLat := master.Column(ColLatitude)
	lngCol, hasLng := master.Column(ColLongitude)

	var rows [][]string
	for _, row := range master.Rows {
		if master.Value(row, ColCategory) != clinicCategory {
			continue
		}

		out := make([]string, len(master.Header), len(header))
		copy(out, row)
		if hasLat && latCol < len(out) {
			out[latCol] = coerceNumeric(out[latCol])
		}
		if hasLng && lngCol < len(out) {
			out[lngCol] = coerceNumeric(out[lngCol])
		}

		agg := aggregates[master.Value(row, ColID)]
		specialties := ""
		if agg != nil {
			specialties = joinSpecialties(agg.specialties)
		}
		out = append(out, specialties)
		for _, day := range entities.DayCategories {
			start, end := "", ""
			if agg != nil {
				start = agg.minStart[day]
				end = agg.maxEnd[day]
			}
			out = append(out, start, end)
		}
		rows = append(rows, out)
	}

	return NewTable(header, rows), nil
}

// cleanTimeValue drops values the hours table uses as fillers for "no
// reception": blanks, literal nan, and zero.
func cleanTimeValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "nan") || v == "0" {
		return ""
	}
	return v
}

// coerceNumeric blanks out coordinate values that do not parse, matching the
// loader's lenient handling downstream.
func coerceNumeric(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return ""
	}
	return v
}

// joinSpecialties renders a specialty set as the deduplicated, sorted,
// " / "-joined aggregate column value.
func joinSpecialties(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " / ")
}
