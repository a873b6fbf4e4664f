package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"simple", "department media", []string{"department", "media"}, false},
		{"double quotes", `search "anna smith"`, []string{"search", "anna smith"}, false},
		{"single quotes", "search 'o neill'", []string{"search", "o neill"}, false},
		{"extra spaces", "  view   table ", []string{"view", "table"}, false},
		{"unclosed quote", `search "anna`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestOverviewSession_FiltersWithoutReloading(t *testing.T) {
	loads := 0
	var buf bytes.Buffer
	session := newOverviewSession(func() (*attendance.Overview, error) {
		loads++
		return testOverview(), nil
	}, newRenderer(&buf, false))
	require.NoError(t, session.reload())

	input := strings.Join([]string{
		"search anna",
		"inactive",
		"department n/a",
		"view department",
		"clear",
		"exit",
	}, "\n")
	require.NoError(t, session.run(strings.NewReader(input)))

	assert.Equal(t, 1, loads)
	assert.Equal(t, attendance.Filter{Department: attendance.AllDepartments}, session.filter)
	assert.True(t, session.byDepartment)
	assert.Contains(t, buf.String(), "search: anna | department: all | inactive: false | view: table")
	assert.Contains(t, buf.String(), "search: anna | department: n/a | inactive: true | view: table")
	assert.Contains(t, buf.String(), "Goodbye!")
}

func TestOverviewSession_Handle(t *testing.T) {
	var buf bytes.Buffer
	session := newOverviewSession(func() (*attendance.Overview, error) { return testOverview(), nil }, newRenderer(&buf, false))
	require.NoError(t, session.reload())

	_, err := session.handle([]string{"department", "juggling"})
	assert.ErrorContains(t, err, "unknown department")
	assert.Equal(t, attendance.AllDepartments, session.filter.Department)

	_, err = session.handle([]string{"view", "grid"})
	assert.ErrorContains(t, err, "usage: view")

	_, err = session.handle([]string{"dance"})
	assert.ErrorContains(t, err, "unknown command")

	quit, err := session.handle([]string{"search", "anna", "smith"})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "anna smith", session.filter.Query)

	_, err = session.handle([]string{"department", "MEDIA"})
	require.NoError(t, err)
	assert.Equal(t, model.DepartmentMedia, session.filter.Department)

	quit, err = session.handle([]string{"quit"})
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestOverviewSession_ReloadError(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	session := newOverviewSession(func() (*attendance.Overview, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("store unavailable")
		}
		return testOverview(), nil
	}, newRenderer(&buf, false))
	require.NoError(t, session.reload())

	_, err := session.handle([]string{"reload"})
	assert.ErrorContains(t, err, "store unavailable")
	// the previously loaded overview is kept
	require.NotNil(t, session.overview)
	assert.Len(t, session.overview.Volunteers, 3)
}
