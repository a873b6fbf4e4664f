package api

import (
	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
)

type volunteerDTO struct {
	ID         string           `json:"id"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	FullName   string           `json:"fullName"`
	Department model.Department `json:"department"`
	IsActive   bool             `json:"isActive"`
}

func toVolunteerDTO(v model.Volunteer) volunteerDTO {
	return volunteerDTO{
		ID:         v.ID,
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		FullName:   v.FullName(),
		Department: v.DepartmentKey(),
		IsActive:   v.IsActive,
	}
}

type gameDateDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	IsActive bool   `json:"isActive"`
}

func toGameDateDTO(d model.GameDate) gameDateDTO {
	return gameDateDTO{ID: d.ID, Date: d.DateString(), IsActive: d.IsActive}
}

func toGameDateDTOs(dates []model.GameDate) []gameDateDTO {
	out := make([]gameDateDTO, 0, len(dates))
	for _, d := range dates {
		out = append(out, toGameDateDTO(d))
	}
	return out
}

type scheduledVolunteerDTO struct {
	volunteerDTO
	Status model.AttendanceStatus `json:"status"`
}

type dashboardStatsDTO struct {
	attendance.DashboardStats
	AttendanceRate float64 `json:"attendanceRate"`
}

type dashboardResponse struct {
	Today           string                                    `json:"today"`
	Date            *gameDateDTO                              `json:"date"`
	ShowingOtherDay bool                                      `json:"showingOtherDay"`
	Stats           dashboardStatsDTO                         `json:"stats"`
	Departments     []attendance.Group[scheduledVolunteerDTO] `json:"departments"`
	Duplicates      []attendance.DuplicateRecord              `json:"duplicates"`
}

func toDashboardResponse(dash *attendance.Dashboard, today string, groups *attendance.Groups[attendance.ScheduledVolunteer], showingOtherDay bool) dashboardResponse {
	resp := dashboardResponse{
		Today:           today,
		ShowingOtherDay: showingOtherDay,
		Stats:           dashboardStatsDTO{DashboardStats: dash.Stats, AttendanceRate: dash.Stats.AttendanceRate()},
		Departments:     []attendance.Group[scheduledVolunteerDTO]{},
		Duplicates:      nonNil(dash.Duplicates),
	}
	if dash.Date != nil {
		d := toGameDateDTO(*dash.Date)
		resp.Date = &d
	}
	for _, g := range groups.List() {
		members := make([]scheduledVolunteerDTO, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, scheduledVolunteerDTO{volunteerDTO: toVolunteerDTO(m.Volunteer), Status: m.Status})
		}
		resp.Departments = append(resp.Departments, attendance.Group[scheduledVolunteerDTO]{Department: g.Department, Members: members})
	}
	return resp
}

type volunteerHistoryDTO struct {
	Volunteer volunteerDTO                       `json:"volunteer"`
	Statuses  map[string]*model.AttendanceStatus `json:"statuses"`
	Summary   attendance.StatusSummary           `json:"summary"`
}

func toHistoryDTOs(list []attendance.VolunteerHistory) []volunteerHistoryDTO {
	out := make([]volunteerHistoryDTO, 0, len(list))
	for _, h := range list {
		out = append(out, volunteerHistoryDTO{Volunteer: toVolunteerDTO(h.Volunteer), Statuses: h.Statuses, Summary: h.Summary})
	}
	return out
}

type overviewResponse struct {
	Dates       []gameDateDTO                           `json:"dates"`
	Departments []model.Department                      `json:"departments"`
	Volunteers  []volunteerHistoryDTO                   `json:"volunteers,omitempty"`
	Groups      []attendance.Group[volunteerHistoryDTO] `json:"groups,omitempty"`
	Duplicates  []attendance.DuplicateRecord            `json:"duplicates"`
}

type historyEntryDTO struct {
	Date   gameDateDTO             `json:"date"`
	Status *model.AttendanceStatus `json:"status"`
}

type volunteerDetailResponse struct {
	Volunteer  volunteerDTO                 `json:"volunteer"`
	Summary    attendance.StatusSummary     `json:"summary"`
	History    []historyEntryDTO            `json:"history"`
	Duplicates []attendance.DuplicateRecord `json:"duplicates"`
}

func toVolunteerDetailResponse(detail *attendance.VolunteerDetail) volunteerDetailResponse {
	history := make([]historyEntryDTO, 0, len(detail.History))
	for _, h := range detail.History {
		history = append(history, historyEntryDTO{Date: toGameDateDTO(h.GameDate), Status: h.Status})
	}
	return volunteerDetailResponse{
		Volunteer:  toVolunteerDTO(detail.Volunteer),
		Summary:    detail.Summary,
		History:    history,
		Duplicates: nonNil(detail.Duplicates),
	}
}

func nonNil(dups []attendance.DuplicateRecord) []attendance.DuplicateRecord {
	if dups == nil {
		return []attendance.DuplicateRecord{}
	}
	return dups
}
