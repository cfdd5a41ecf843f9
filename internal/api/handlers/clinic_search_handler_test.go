package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medigate/clinic-navigator/internal/api/handlers"
	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/pkg/config"
	"github.com/medigate/clinic-navigator/pkg/errors"
)

type stubDataset struct {
	facilities []*entities.Facility
	err        error
}

func (s *stubDataset) Load(ctx context.Context) ([]*entities.Facility, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.facilities, nil
}

type stubGeocoder struct{}

func (s *stubGeocoder) Geocode(ctx context.Context, place string) (*entities.Location, error) {
	if place == "田町駅" {
		return &entities.Location{Latitude: 35.645736, Longitude: 139.747575}, nil
	}
	return nil, errors.NewNotFoundError("no results for place: " + place)
}

func testSearchDefaults() config.SearchConfig {
	return config.SearchConfig{
		DefaultRadiusKm:       2.0,
		SoonCloseThresholdMin: 30,
		SoonStartThresholdMin: 15,
		DefaultLimit:          10,
	}
}

// mondayClinic is open 月 09:00-17:00 roughly 500m north of Tamachi station.
func mondayClinic(id, name, departments string) *entities.Facility {
	return &entities.Facility{
		ID:          id,
		Name:        name,
		Departments: departments,
		Location: &entities.Location{
			Latitude:  35.645736 + 0.5/111.19,
			Longitude: 139.747575,
		},
		ReceptionHours: map[entities.DayCategory]entities.ReceptionWindow{
			entities.DayMonday: {Start: "09:00", End: "17:00"},
		},
	}
}

func newSearchHandler(dataset *stubDataset, now time.Time) *handlers.ClinicSearchHandler {
	search := services.NewClinicSearchService(
		dataset,
		services.NewReceptionService(),
		services.NewSearchRankingService(),
	).WithClock(func() time.Time { return now })

	return handlers.NewClinicSearchHandler(search, &stubGeocoder{}, testSearchDefaults())
}

// 2025-06-16 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 16, hour, minute, 0, 0, services.JST())
}

func TestClinicSearchHandler_Search(t *testing.T) {
	dataset := &stubDataset{facilities: []*entities.Facility{
		mondayClinic("C001", "みなとクリニック", "内科 / 小児科"),
	}}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count   int                           `json:"count"`
		Results []*entities.ClinicSearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "C001", response.Results[0].Facility.ID)
	assert.Equal(t, entities.StatusAccepting, response.Results[0].ReceptionStatus)
}

func TestClinicSearchHandler_SearchByPlace(t *testing.T) {
	dataset := &stubDataset{facilities: []*entities.Facility{
		mondayClinic("C001", "みなとクリニック", "内科"),
	}}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?place=田町駅", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}

func TestClinicSearchHandler_UnknownPlace(t *testing.T) {
	handler := newSearchHandler(&stubDataset{}, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?place=どこか", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClinicSearchHandler_MissingOrigin(t *testing.T) {
	handler := newSearchHandler(&stubDataset{}, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClinicSearchHandler_InvalidParams(t *testing.T) {
	handler := newSearchHandler(&stubDataset{}, mondayAt(10, 0))

	for _, target := range []string{
		"/api/clinics/search?lat=abc&lng=139.7",
		"/api/clinics/search?lat=35.6&lng=139.7&radius_km=-1",
		"/api/clinics/search?lat=35.6&lng=139.7&only_open=maybe",
		"/api/clinics/search?lat=35.6&lng=139.7&soon_close_min=-5",
		"/api/clinics/search?lat=35.6&lng=139.7&limit=ten",
	} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		handler.Search(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestClinicSearchHandler_DefaultExcludesMentalHealth(t *testing.T) {
	dataset := &stubDataset{facilities: []*entities.Facility{
		mondayClinic("C001", "みなとクリニック", "内科"),
		mondayClinic("C002", "こころクリニック", "心療内科"),
	}}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Results []*entities.ClinicSearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Results, 1)
	assert.Equal(t, "C001", response.Results[0].Facility.ID)
}

func TestClinicSearchHandler_MentalHealthKeptWhenRequested(t *testing.T) {
	dataset := &stubDataset{facilities: []*entities.Facility{
		mondayClinic("C002", "こころクリニック", "心療内科"),
	}}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575&departments=心療内科", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}

func TestClinicSearchHandler_DefaultExcludesHomeVisitNames(t *testing.T) {
	dataset := &stubDataset{facilities: []*entities.Facility{
		mondayClinic("C001", "みなとクリニック", "内科"),
		mondayClinic("C003", "訪問診療クリニック", "内科"),
	}}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Results []*entities.ClinicSearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Results, 1)
	assert.Equal(t, "C001", response.Results[0].Facility.ID)

	// Explicit empty exclude_names keeps the home-visit clinic.
	req = httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575&exclude_names=", nil)
	w = httptest.NewRecorder()
	handler.Search(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var all struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
	assert.Equal(t, 2, all.Count)
}

func TestClinicSearchHandler_DatasetError(t *testing.T) {
	dataset := &stubDataset{err: errors.NewValidationError("dataset is missing required column")}
	handler := newSearchHandler(dataset, mondayAt(10, 0))

	req := httptest.NewRequest("GET", "/api/clinics/search?lat=35.645736&lng=139.747575", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
