//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medigate/clinic-navigator/internal/adapters/dataset"
	"github.com/medigate/clinic-navigator/internal/adapters/providers/geolocation"
	"github.com/medigate/clinic-navigator/internal/api/handlers"
	"github.com/medigate/clinic-navigator/internal/api/routes"
	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/pkg/config"
)

type cannedLLM struct{}

func (cannedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return "【推奨する診療科】\n- 内科\n\n【重要な注意】\n正確な診断には医師の診察が必要です。", nil
}

func (cannedLLM) GenerateGrounded(ctx context.Context, prompt string) (*providers.GroundedResponse, error) {
	return &providers.GroundedResponse{Text: "不明"}, nil
}

// mergedCSV is a minimal clinic dataset with one clinic near Tamachi station
// accepting Monday 09:00-17:00.
const mergedCSV = `ID,機関区分,正式名称,住所,案内用ホームページアドレス,所在地座標（緯度）,所在地座標（経度）,標ぼう科目_一覧,月_外来受付開始時間,月_外来受付終了時間
C001,2,みなとクリニック,東京都港区芝浦3-1-1,https://example.jp,35.650233,139.747575,内科 / 小児科,09:00,17:00
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clinics_merged.csv")
	require.NoError(t, os.WriteFile(path, []byte(mergedCSV), 0o644))
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := dataset.NewRepository(writeDataset(t))

	searchService := services.NewClinicSearchService(
		repo,
		services.NewReceptionService(),
		services.NewSearchRankingService(),
	).WithClock(func() time.Time {
		// 2025-06-16 is a Monday
		return time.Date(2025, 6, 16, 10, 0, 0, 0, services.JST())
	})

	triageService := services.NewTriageService(cannedLLM{})
	specialistService := services.NewSpecialistService(cannedLLM{})
	geoProvider := geolocation.NewMockGeolocationProvider()

	defaults := config.SearchConfig{
		DefaultRadiusKm:       2.0,
		SoonCloseThresholdMin: 30,
		SoonStartThresholdMin: 15,
		DefaultLimit:          10,
	}

	router := routes.NewRouter(
		handlers.NewClinicSearchHandler(searchService, geoProvider, defaults),
		handlers.NewTriageHandler(triageService),
		handlers.NewSpecialistHandler(specialistService),
		handlers.NewGeolocationHandler(geoProvider),
		nil,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClinicSearchEndToEnd(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/clinics/search?place=田町駅")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var response struct {
		Count   int `json:"count"`
		Results []struct {
			Facility struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"facility"`
			ReceptionStatus string  `json:"reception_status"`
			DistanceKm      float64 `json:"distance_km"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "C001", response.Results[0].Facility.ID)
	assert.Equal(t, "🟢 受付中", response.Results[0].ReceptionStatus)
	assert.Less(t, response.Results[0].DistanceKm, 2.0)
}

func TestGeocodeEndToEnd(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/geocode?place=上野駅")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.InDelta(t, 35.713768, payload["lat"].(float64), 1e-6)
}
