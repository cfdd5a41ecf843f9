package services

import (
	"math"
	"sort"
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
)

// unrankedPriority sorts rows matching none of the requested departments
// last. The include filter already removes such rows, so this value is only
// reachable defensively.
const unrankedPriority = 999

// SearchRankingService orders clinic search results by the caller's
// department preference, then urgency, then proximity.
type SearchRankingService struct{}

// NewSearchRankingService creates a new ranking service
func NewSearchRankingService() *SearchRankingService {
	return &SearchRankingService{}
}

// DepartmentPriority returns the index of the first requested department
// keyword found in the facility's specialty list. With no keywords every row
// ranks equally at 0.
func (s *SearchRankingService) DepartmentPriority(departments string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	for i, kw := range keywords {
		if kw != "" && strings.Contains(departments, kw) {
			return i
		}
	}
	return unrankedPriority
}

// Rank sorts results in place: ascending by department priority, then
// minutes until close (+inf while not accepting), then distance. Requested
// departments are honored in caller order, then facilities closer to closing
// surface first, then nearer facilities win ties.
func (s *SearchRankingService) Rank(results []*entities.ClinicSearchResult, keywords []string) {
	if len(results) == 0 {
		return
	}

	type rankedRow struct {
		result   *entities.ClinicSearchResult
		priority int
		minutes  float64
	}

	rows := make([]rankedRow, len(results))
	for i, r := range results {
		row := rankedRow{result: r, minutes: math.Inf(1)}
		row.priority = s.DepartmentPriority(r.Facility.Departments, keywords)
		if r.MinutesToClose != nil {
			row.minutes = float64(*r.MinutesToClose)
		}
		rows[i] = row
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].priority != rows[j].priority {
			return rows[i].priority < rows[j].priority
		}
		if rows[i].minutes != rows[j].minutes {
			return rows[i].minutes < rows[j].minutes
		}
		return rows[i].result.DistanceKm < rows[j].result.DistanceKm
	})

	for i := range rows {
		results[i] = rows[i].result
	}
}
