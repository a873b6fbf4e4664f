package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// renderer writes the text views. Colors are skipped when color is false.
type renderer struct {
	w     io.Writer
	color bool
}

func newRenderer(w io.Writer, color bool) *renderer {
	return &renderer{w: w, color: color}
}

func (r *renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + colorReset
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// statusSymbol returns the one-character cell used in history tables
func (r *renderer) statusSymbol(status *model.AttendanceStatus) string {
	if status == nil {
		return r.paint(colorDim, "-")
	}
	switch *status {
	case model.StatusPresent:
		return r.paint(colorGreen, "✓")
	case model.StatusAbsent:
		return r.paint(colorRed, "✗")
	case model.StatusScheduled:
		return r.paint(colorYellow, "•")
	}
	return "?"
}

func (r *renderer) statusWord(status model.AttendanceStatus) string {
	switch status {
	case model.StatusPresent:
		return r.paint(colorGreen, string(status))
	case model.StatusAbsent:
		return r.paint(colorRed, string(status))
	default:
		return r.paint(colorYellow, string(status))
	}
}

func departmentTitle(d model.Department) string {
	return strings.ToUpper(string(d))
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// dashboard renders the live view: clock line, date notice, stats and department buckets
func (r *renderer) dashboard(dash *attendance.Dashboard, groups *attendance.Groups[attendance.ScheduledVolunteer], today, now time.Time) {
	r.printf("\n%s    %s\n", r.paint(colorBold, "Game Night Attendance"), now.Format("Mon 02 Jan 2006 15:04:05"))

	if !dash.HasDate() {
		r.printf("\nNo active game dates scheduled.\n\n")
		return
	}

	if dash.ShowingOtherDay(today) {
		r.printf("Showing schedule for %s (no game scheduled for today)\n", dash.Date.Date.Format("Mon 02 Jan 2006"))
	} else {
		r.printf("Today's game: %s\n", dash.Date.Date.Format("Mon 02 Jan 2006"))
	}

	s := dash.Stats
	r.printf("Total %d  Present %d  Scheduled %d  Departments %d  Attendance %s\n",
		s.Total, s.Present, s.Scheduled, s.Departments, formatRate(s.AttendanceRate()))

	if groups.Len() == 0 {
		r.printf("\nNo volunteers to show.\n\n")
		return
	}

	for _, g := range groups.List() {
		r.printf("\n%s (%d)\n", r.paint(colorBold, departmentTitle(g.Department)), len(g.Members))
		for _, m := range g.Members {
			status := m.Status
			r.printf("  %s %-28s %s\n", r.statusSymbol(&status), m.Volunteer.FullName(), r.statusWord(m.Status))
		}
	}
	r.printf("\n")
}

func nameWidth(list []attendance.VolunteerHistory) int {
	width := 20
	for _, h := range list {
		if n := len(h.Volunteer.FullName()); n > width {
			width = n
		}
	}
	return width + 2
}

// overviewTable renders one row per volunteer and one column per game date
func (r *renderer) overviewTable(dates []model.GameDate, list []attendance.VolunteerHistory) {
	if len(list) == 0 {
		r.printf("\nNo volunteers match the current filters.\n\n")
		return
	}

	nameCol := nameWidth(list)
	const deptCol = 13
	const dateCol = 8

	r.printf("\n%-*s%-*s", nameCol, "Name", deptCol, "Department")
	for _, d := range dates {
		r.printf("%-*s", dateCol, d.Date.Format("Jan 02"))
	}
	r.printf("%s\n", "Present  Rate")
	r.printf("%s\n", strings.Repeat("-", nameCol+deptCol+dateCol*len(dates)+13))

	for _, h := range list {
		name := h.Volunteer.FullName()
		if !h.Volunteer.IsActive {
			name = r.paint(colorDim, fmt.Sprintf("%-*s", nameCol, name))
		} else {
			name = fmt.Sprintf("%-*s", nameCol, name)
		}
		r.printf("%s%-*s", name, deptCol, h.Volunteer.DepartmentKey())
		for _, d := range dates {
			// the symbol is one rune wide, pad the rest
			r.printf("%s%s", r.statusSymbol(h.Statuses[d.ID]), strings.Repeat(" ", dateCol-1))
		}
		r.printf("%-9s%s\n", fmt.Sprintf("%d/%d", h.Summary.Present, h.Summary.Total), formatRate(h.Summary.AttendanceRate))
	}
	r.printf("\n")
}

// overviewGroups renders one card per department
func (r *renderer) overviewGroups(dates []model.GameDate, groups *attendance.Groups[attendance.VolunteerHistory]) {
	if groups.Len() == 0 {
		r.printf("\nNo volunteers match the current filters.\n\n")
		return
	}

	for _, g := range groups.List() {
		r.printf("\n%s (%d)\n", r.paint(colorBold, departmentTitle(g.Department)), len(g.Members))
		nameCol := nameWidth(g.Members)
		for _, h := range g.Members {
			var strip strings.Builder
			for _, d := range dates {
				strip.WriteString(r.statusSymbol(h.Statuses[d.ID]))
			}
			r.printf("  %-*s %s  %d/%d %s\n", nameCol, h.Volunteer.FullName(), strip.String(),
				h.Summary.Present, h.Summary.Total, formatRate(h.Summary.AttendanceRate))
		}
	}
	r.printf("\n")
}

// volunteer renders the detail view
func (r *renderer) volunteer(detail *attendance.VolunteerDetail) {
	v := detail.Volunteer
	active := "active"
	if !v.IsActive {
		active = "inactive"
	}

	r.printf("\n%s\n", r.paint(colorBold, v.FullName()))
	r.printf("ID:         %s\n", v.ID)
	r.printf("Department: %s\n", v.DepartmentKey())
	r.printf("Status:     %s\n\n", active)

	s := detail.Summary
	r.printf("Present %d  Scheduled %d  Absent %d  Total %d  Attendance %s\n\n",
		s.Present, s.Scheduled, s.Absent, s.Total, formatRate(s.AttendanceRate))

	if len(detail.History) == 0 {
		r.printf("No game dates recorded.\n\n")
		return
	}

	r.printf("History:\n")
	for _, h := range detail.History {
		word := r.paint(colorDim, "no record")
		if h.Status != nil {
			word = r.statusWord(*h.Status)
		}
		inactive := ""
		if !h.GameDate.IsActive {
			inactive = r.paint(colorDim, " (inactive date)")
		}
		r.printf("  %s  %s %s%s\n", h.GameDate.Date.Format("Mon 02 Jan 2006"), r.statusSymbol(h.Status), word, inactive)
	}
	r.printf("\n")
}

// schedule renders a schedule check report
func (r *renderer) schedule(rule string, report *services.ScheduleReport) {
	r.printf("\nSchedule check for %s\n", rule)
	r.printf("Window: %s to %s (%d expected dates)\n",
		report.From.Format(model.DateLayout), report.Until.Format(model.DateLayout), len(report.Occurrences))

	if report.OK() {
		r.printf("%s\n\n", r.paint(colorGreen, "✓ Every expected date has an active game date"))
		return
	}

	if len(report.Missing) > 0 {
		r.printf("\n%s\n", r.paint(colorRed, "Missing game dates:"))
		for _, d := range report.Missing {
			r.printf("  %s\n", d.Format("Mon 02 Jan 2006"))
		}
	}
	if len(report.Unexpected) > 0 {
		r.printf("\n%s\n", r.paint(colorYellow, "Active dates outside the schedule:"))
		for _, d := range report.Unexpected {
			r.printf("  %s  %s\n", d.Date.Format("Mon 02 Jan 2006"), r.paint(colorDim, d.ID))
		}
	}
	r.printf("\n")
}

// duplicates prints a warning line when records were dropped
func (r *renderer) duplicates(dups []attendance.DuplicateRecord) {
	if len(dups) == 0 {
		return
	}
	r.printf("%s\n", r.paint(colorYellow, fmt.Sprintf("⚠ %d duplicate attendance record(s) ignored", len(dups))))
}
