package attendance

import "github.com/gamenight/attendance/pkg/core/model"

// StatusSummary counts a volunteer's records by status
type StatusSummary struct {
	Scheduled      int     `json:"scheduled"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// Summarize counts statuses and computes the attendance rate (present / total * 100)
func Summarize(statuses []model.AttendanceStatus) StatusSummary {
	var s StatusSummary
	for _, status := range statuses {
		switch status {
		case model.StatusScheduled:
			s.Scheduled++
		case model.StatusPresent:
			s.Present++
		case model.StatusAbsent:
			s.Absent++
		}
	}
	s.Total = s.Scheduled + s.Present + s.Absent
	s.AttendanceRate = rate(s.Present, s.Total)
	return s
}

func rate(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}
