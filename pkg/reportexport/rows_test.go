package reportexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type audit struct {
	CreatedBy string `json:"createdBy"`
}

type cropPlan struct {
	audit
	ID         string                 `export:"id"`
	CropName   string                 `json:"cropName"`
	Area       *float64               `json:"area"`
	Planted    time.Time              `json:"plantingDate"`
	Secret     string                 `export:"-"`
	Attributes map[string]interface{} `export:",inline"`
	internal   string
}

func TestRowsFromStructs(t *testing.T) {
	area := 2.5
	planted := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	plans := []*cropPlan{
		{
			audit:      audit{CreatedBy: "farmer"},
			ID:         "c-1",
			CropName:   "Carrot",
			Area:       &area,
			Planted:    planted,
			Secret:     "x",
			Attributes: map[string]interface{}{"soil": "loam"},
			internal:   "hidden",
		},
		{ID: "c-2", CropName: "Beans"},
	}

	rows, err := RowsFromStructs(plans)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		"createdBy":    "farmer",
		"id":           "c-1",
		"cropName":     "Carrot",
		"area":         2.5,
		"plantingDate": planted,
		"soil":         "loam",
	}, rows[0])
	assert.Nil(t, rows[1]["area"])
	assert.NotContains(t, rows[1], "Secret")
}

func TestRowsFromStructsMaps(t *testing.T) {
	rows, err := RowsFromStructs([]map[string]interface{}{{"id": 1}})
	require.NoError(t, err)
	assert.Equal(t, []Row{{"id": 1}}, rows)

	_, err = RowsFromStructs("nope")
	assert.Error(t, err)

	_, err = RowsFromStructs([]int{1})
	assert.Error(t, err)
}
