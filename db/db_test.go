package db

import (
	"testing"
	"time"

	"github.com/jsphweid/danseband/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderItem(t *testing.T) {
	rec := model.RenderRecord{
		ID:        "3f1c",
		SongID:    "db-major",
		Path:      "generated/1700000000_0042_db-major.mid",
		Tempo:     116,
		Bars:      52,
		Notes:     1234,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	item := renderItem(rec)

	assert := assert.New(t)
	assert.Equal("3f1c", *item["PK"].S)
	assert.Equal("db-major", *item["SongId"].S)
	assert.Equal("116", *item["Tempo"].N)
	assert.Equal("52", *item["Bars"].N)
	assert.Equal("1234", *item["Notes"].N)
	assert.Equal("2024-05-01T12:00:00Z", *item["CreatedAt"].S)
}

func TestRecordRenderNeedsID(t *testing.T) {
	err := RecordRender(model.RenderRecord{SongID: "db-major"})
	assert.Error(t, err)
}
