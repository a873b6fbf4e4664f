package attendance

import (
	"strings"

	"github.com/gamenight/attendance/pkg/core/model"
)

// AllDepartments disables department filtering
const AllDepartments model.Department = "all"

// Filter holds the search, department and inactive toggles of the overview
type Filter struct {
	Query        string
	Department   model.Department
	ShowInactive bool
}

// MatchName reports whether query is a case-insensitive substring of the
// volunteer's "first last" name. An empty query matches everyone.
func MatchName(v model.Volunteer, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.FullName()), strings.ToLower(query))
}

func (f Filter) matchDepartment(v model.Volunteer) bool {
	if f.Department == "" || f.Department == AllDepartments {
		return true
	}
	return v.DepartmentKey() == f.Department
}

// Match applies the name, department and active predicates together
func (f Filter) Match(v model.Volunteer) bool {
	return MatchName(v, f.Query) && f.matchDepartment(v) && (f.ShowInactive || v.IsActive)
}

// FilterHistories returns the histories whose volunteer matches f, in input order
func FilterHistories(list []VolunteerHistory, f Filter) []VolunteerHistory {
	out := make([]VolunteerHistory, 0, len(list))
	for _, h := range list {
		if f.Match(h.Volunteer) {
			out = append(out, h)
		}
	}
	return out
}

// FilterHistoryGroups filters each department bucket with f. Departments other
// than the selected one, and buckets left empty, are dropped.
func FilterHistoryGroups(groups *Groups[VolunteerHistory], f Filter) *Groups[VolunteerHistory] {
	out := NewGroups[VolunteerHistory]()
	for _, dept := range groups.Departments() {
		if f.Department != "" && f.Department != AllDepartments && dept != f.Department {
			continue
		}
		for _, h := range groups.Get(dept) {
			if MatchName(h.Volunteer, f.Query) && (f.ShowInactive || h.Volunteer.IsActive) {
				out.Add(dept, h)
			}
		}
	}
	return out
}

// FilterDashboardGroups applies the name search to every dashboard bucket,
// dropping buckets with no remaining members
func FilterDashboardGroups(groups *Groups[ScheduledVolunteer], query string) *Groups[ScheduledVolunteer] {
	out := NewGroups[ScheduledVolunteer]()
	for _, dept := range groups.Departments() {
		for _, sv := range groups.Get(dept) {
			if MatchName(sv.Volunteer, query) {
				out.Add(dept, sv)
			}
		}
	}
	return out
}
