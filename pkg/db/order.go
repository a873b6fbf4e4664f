package db

import (
	"cmp"
	"slices"

	"github.com/gamenight/attendance/pkg/core/model"
)

// departmentRank orders departments by declaration, with no department after every value
func departmentRank(d model.Department) int {
	if d == "" {
		return len(model.Departments)
	}
	return d.Rank()
}

// SortVolunteers sorts volunteers in place the way the Postgres store orders them.
// The sort is stable so equal keys keep their row order.
func SortVolunteers(volunteers []model.Volunteer, order VolunteerOrder) {
	switch order {
	case OrderByFirstName:
		slices.SortStableFunc(volunteers, func(a, b model.Volunteer) int {
			return cmp.Compare(a.FirstName, b.FirstName)
		})
	default:
		slices.SortStableFunc(volunteers, func(a, b model.Volunteer) int {
			if c := cmp.Compare(departmentRank(a.Department), departmentRank(b.Department)); c != 0 {
				return c
			}
			return cmp.Compare(a.LastName, b.LastName)
		})
	}
}

// SortGameDates sorts game dates in place by date ascending, keeping row order for ties
func SortGameDates(dates []model.GameDate) {
	slices.SortStableFunc(dates, func(a, b model.GameDate) int {
		return a.Date.Compare(b.Date)
	})
}
