package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

const sampleCSV = `ID,正式名称,住所,所在地座標（緯度）,所在地座標（経度）,標ぼう科目_一覧,月_外来受付開始時間,月_外来受付終了時間,火_外来受付開始時間,火_外来受付終了時間
C001,田町内科クリニック,東京都港区芝浦1-1,35.6456,139.7476,内科 / 呼吸器内科,09:00,17:00,0900,1730
C002,座標なしクリニック,東京都港区芝浦2-2,,,皮膚科,10:00,18:00,,
C003,壊れ座標クリニック,東京都港区芝浦3-3,北緯35度,139.7,眼科,,,,
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFacilities_UTF8(t *testing.T) {
	path := writeFile(t, "clinics.csv", []byte(sampleCSV))

	facilities, err := LoadFacilities(path)
	require.NoError(t, err)
	require.Len(t, facilities, 3)

	f := facilities[0]
	assert.Equal(t, "C001", f.ID)
	assert.Equal(t, "田町内科クリニック", f.Name)
	assert.Equal(t, "東京都港区芝浦1-1", f.Address)
	assert.Equal(t, "内科 / 呼吸器内科", f.Departments)
	require.NotNil(t, f.Location)
	assert.InDelta(t, 35.6456, f.Location.Latitude, 1e-9)

	mon, ok := f.Window(entities.DayMonday)
	require.True(t, ok)
	assert.Equal(t, entities.ReceptionWindow{Start: "09:00", End: "17:00"}, mon)
	tue, ok := f.Window(entities.DayTuesday)
	require.True(t, ok)
	assert.Equal(t, entities.ReceptionWindow{Start: "0900", End: "1730"}, tue)
	_, ok = f.Window(entities.DayWednesday)
	assert.False(t, ok)
}

func TestLoadFacilities_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)
	path := writeFile(t, "clinics_bom.csv", data)

	facilities, err := LoadFacilities(path)
	require.NoError(t, err)
	require.Len(t, facilities, 3)
	assert.Equal(t, "C001", facilities[0].ID) // BOM must not leak into the first header
}

func TestLoadFacilities_ShiftJISFallback(t *testing.T) {
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(sampleCSV))
	require.NoError(t, err)
	path := writeFile(t, "clinics_sjis.csv", encoded)

	facilities, err := LoadFacilities(path)
	require.NoError(t, err)
	require.Len(t, facilities, 3)
	assert.Equal(t, "田町内科クリニック", facilities[0].Name)
}

func TestLoadFacilities_MissingCoordinatesLeaveNoLocation(t *testing.T) {
	path := writeFile(t, "clinics.csv", []byte(sampleCSV))

	facilities, err := LoadFacilities(path)
	require.NoError(t, err)

	assert.Nil(t, facilities[1].Location) // blank values
	assert.Nil(t, facilities[2].Location) // unparseable latitude
}

func TestLoadFacilities_FileNotFound(t *testing.T) {
	_, err := LoadFacilities(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestLoadFacilities_MissingCoordinateColumnIsFatal(t *testing.T) {
	path := writeFile(t, "clinics.csv", []byte("ID,正式名称\nC001,クリニック\n"))

	_, err := LoadFacilities(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "所在地座標（緯度）")
}

func TestRepository_MemoizesLoad(t *testing.T) {
	path := writeFile(t, "clinics.csv", []byte(sampleCSV))
	repo := NewRepository(path)

	first, err := repo.Load(context.Background())
	require.NoError(t, err)

	// Replacing the file after the first load must not change the cached
	// dataset.
	require.NoError(t, os.WriteFile(path, []byte("ID,所在地座標（緯度）,所在地座標（経度）\n"), 0o644))

	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.Equal(t, &first[0], &second[0])
}

func TestRepository_MemoizesError(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing.csv"))

	_, err1 := repo.Load(context.Background())
	_, err2 := repo.Load(context.Background())
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
}
