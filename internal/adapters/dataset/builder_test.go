package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

func masterTable() *Table {
	return NewTable(
		[]string{"ID", "機関区分", "正式名称", "所在地座標（緯度）", "所在地座標（経度）"},
		[][]string{
			{"C001", "2", "田町内科クリニック", "35.6456", "139.7476"},
			{"H001", "1", "総合病院", "35.65", "139.75"},
			{"C002", "2", "芝浦皮膚科", "北緯35度", "139.75"},
		},
	)
}

func hoursTable() *Table {
	return NewTable(
		[]string{"ID", "診療科目名", "月_外来受付開始時間", "月_外来受付終了時間", "火_外来受付開始時間", "火_外来受付終了時間"},
		[][]string{
			{"C001", "内科", "09:00", "12:00", "09:00", "17:00"},
			{"C001", "呼吸器内科", "08:30", "19:00", "nan", "0"},
			{"C001", "内科", "09:00", "12:00", "", ""}, // duplicate specialty row
			{"C002", "皮膚科", "10:00", "18:00", "", ""},
		},
	)
}

func TestMerge_FiltersToClinics(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	require.Len(t, merged.Rows, 2)
	assert.Equal(t, "C001", merged.Value(merged.Rows[0], "ID"))
	assert.Equal(t, "C002", merged.Value(merged.Rows[1], "ID"))
}

func TestMerge_AggregatesSpecialties(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	// Deduplicated, sorted, " / "-joined.
	assert.Equal(t, "内科 / 呼吸器内科", merged.Value(merged.Rows[0], "標ぼう科目_一覧"))
	assert.Equal(t, "皮膚科", merged.Value(merged.Rows[1], "標ぼう科目_一覧"))
}

func TestMerge_LexicographicMinMaxPerDay(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	row := merged.Rows[0]
	assert.Equal(t, "08:30", merged.Value(row, "月_外来受付開始時間"))
	assert.Equal(t, "19:00", merged.Value(row, "月_外来受付終了時間"))
	// nan/0 filler values on the second specialty row are ignored.
	assert.Equal(t, "09:00", merged.Value(row, "火_外来受付開始時間"))
	assert.Equal(t, "17:00", merged.Value(row, "火_外来受付終了時間"))
}

func TestMerge_LeftJoinKeepsFacilitiesWithoutHours(t *testing.T) {
	hours := NewTable(
		[]string{"ID", "診療科目名"},
		[][]string{{"C001", "内科"}},
	)

	merged, err := Merge(masterTable(), hours)
	require.NoError(t, err)

	require.Len(t, merged.Rows, 2)
	assert.Equal(t, "", merged.Value(merged.Rows[1], "標ぼう科目_一覧"))
	assert.Equal(t, "", merged.Value(merged.Rows[1], "月_外来受付開始時間"))
}

func TestMerge_CoercesCoordinates(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	assert.Equal(t, "35.6456", merged.Value(merged.Rows[0], "所在地座標（緯度）"))
	// Unparseable coordinate is blanked, the row itself survives.
	assert.Equal(t, "", merged.Value(merged.Rows[1], "所在地座標（緯度）"))
	assert.Equal(t, "139.75", merged.Value(merged.Rows[1], "所在地座標（経度）"))
}

func TestMerge_MissingRequiredColumns(t *testing.T) {
	noCategory := NewTable([]string{"ID", "正式名称"}, nil)
	_, err := Merge(noCategory, hoursTable())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	noDept := NewTable([]string{"ID"}, nil)
	_, err = Merge(masterTable(), noDept)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestMerge_HolidayColumnsAlwaysPresent(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	_, ok := merged.Column("祝_外来受付開始時間")
	assert.True(t, ok)
	_, ok = merged.Column("祝_外来受付終了時間")
	assert.True(t, ok)
}

func TestMergeRoundTripsThroughLoader(t *testing.T) {
	merged, err := Merge(masterTable(), hoursTable())
	require.NoError(t, err)

	path := writeFile(t, "merged.csv", nil)
	require.NoError(t, WriteTable(path, merged))

	facilities, err := LoadFacilities(path)
	require.NoError(t, err)
	require.Len(t, facilities, 2)
	assert.Equal(t, "田町内科クリニック", facilities[0].Name)
	assert.Equal(t, "内科 / 呼吸器内科", facilities[0].Departments)
	require.NotNil(t, facilities[0].Location)
	assert.Nil(t, facilities[1].Location)
}
