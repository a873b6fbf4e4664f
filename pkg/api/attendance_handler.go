package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/core/services"
	"github.com/gamenight/attendance/pkg/db"
)

// Store is the read access the attendance handlers need
type Store interface {
	services.DashboardStore
	services.OverviewStore
	services.VolunteerStore
}

// AttendanceHandler serves the dashboard, overview and volunteer detail views
type AttendanceHandler struct {
	store    Store
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

// NewAttendanceHandler returns a handler that decides "today" using now in location
func NewAttendanceHandler(store Store, logger *zap.Logger, now func() time.Time, location *time.Location) *AttendanceHandler {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &AttendanceHandler{store: store, logger: logger, now: now, location: location}
}

func (h *AttendanceHandler) today(c *fiber.Ctx) (time.Time, error) {
	if s := c.Query("today"); s != "" {
		d, err := model.ParseDay(s)
		if err != nil {
			return time.Time{}, NewValidationError("today must be YYYY-MM-DD", map[string]any{"today": s})
		}
		return d, nil
	}
	return model.Day(h.now().In(h.location)), nil
}

// Dashboard returns the live view for one game date.
// Query: search, today (YYYY-MM-DD, defaults to the current date).
func (h *AttendanceHandler) Dashboard(c *fiber.Ctx) error {
	today, err := h.today(c)
	if err != nil {
		return err
	}

	dash, err := services.ViewDashboard(c.UserContext(), h.store, h.logger, today)
	if err != nil {
		return err
	}

	groups := attendance.FilterDashboardGroups(dash.ByDepartment, c.Query("search"))
	return c.JSON(toDashboardResponse(dash, today.Format(model.DateLayout), groups, dash.ShowingOtherDay(today)))
}

// Overview returns the full history.
// Query: search, department (or "all"), show_inactive, view ("table" or "department").
func (h *AttendanceHandler) Overview(c *fiber.Ctx) error {
	filter, view, err := parseOverviewQuery(c)
	if err != nil {
		return err
	}

	overview, err := services.ViewOverview(c.UserContext(), h.store, h.logger)
	if err != nil {
		return err
	}

	resp := overviewResponse{
		Dates:       toGameDateDTOs(overview.Dates),
		Departments: overview.Departments(),
		Duplicates:  nonNil(overview.Duplicates),
	}
	if view == "department" {
		resp.Groups = []attendance.Group[volunteerHistoryDTO]{}
		for _, g := range attendance.FilterHistoryGroups(overview.ByDepartment, filter).List() {
			resp.Groups = append(resp.Groups, attendance.Group[volunteerHistoryDTO]{Department: g.Department, Members: toHistoryDTOs(g.Members)})
		}
	} else {
		resp.Volunteers = toHistoryDTOs(attendance.FilterHistories(overview.Volunteers, filter))
	}

	return c.JSON(resp)
}

func parseOverviewQuery(c *fiber.Ctx) (attendance.Filter, string, error) {
	filter := attendance.Filter{
		Query:      c.Query("search"),
		Department: attendance.AllDepartments,
	}

	if dept := strings.ToLower(c.Query("department")); dept != "" && dept != string(attendance.AllDepartments) {
		d := model.Department(dept)
		if !d.IsValid() {
			return filter, "", NewValidationError("unknown department", map[string]any{"department": dept})
		}
		filter.Department = d
	}

	if s := c.Query("show_inactive"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return filter, "", NewValidationError("show_inactive must be a boolean", map[string]any{"show_inactive": s})
		}
		filter.ShowInactive = b
	}

	view := c.Query("view", "table")
	if view != "table" && view != "department" {
		return filter, "", NewValidationError("view must be table or department", map[string]any{"view": view})
	}

	return filter, view, nil
}

// Volunteer returns one volunteer's summary and history
func (h *AttendanceHandler) Volunteer(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return NewValidationError("volunteer id must be a UUID", map[string]any{"id": id})
	}

	detail, err := services.ViewVolunteer(c.UserContext(), h.store, h.logger, id)
	if err != nil {
		if db.IsNotFound(err) {
			return NewNotFound("volunteer", map[string]any{"id": id})
		}
		return err
	}

	return c.JSON(toVolunteerDetailResponse(detail))
}
