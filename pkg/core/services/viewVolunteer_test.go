package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

func TestViewVolunteer(t *testing.T) {
	store := dashboardStore()

	detail, err := ViewVolunteer(t.Context(), store, zap.NewNop(), "v1")
	require.NoError(t, err)

	assert.Equal(t, "Anna Smith", detail.Volunteer.FullName())
	assert.Equal(t, db.RecordFilter{VolunteerID: "v1"}, store.recordFilter)

	require.Len(t, detail.History, 3)
	assert.Equal(t, "d1", detail.History[0].GameDate.ID)
	assert.Equal(t, model.StatusAbsent, *detail.History[0].Status)
	assert.Equal(t, model.StatusPresent, *detail.History[1].Status)
	assert.Nil(t, detail.History[2].Status)

	assert.Equal(t, 1, detail.Summary.Present)
	assert.Equal(t, 1, detail.Summary.Absent)
}

func TestViewVolunteer_NotFound(t *testing.T) {
	store := dashboardStore()

	detail, err := ViewVolunteer(t.Context(), store, zap.NewNop(), "missing")
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.True(t, db.IsNotFound(err))
	assert.False(t, store.called("ListGameDates"))
}
