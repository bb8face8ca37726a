package classroom

import (
	"math"
	"sort"
	"time"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

const dateLayout = "2006-01-02"

// PeriodRange derives the inclusive [start, end] calendar dates covering ref.
// Weekly is the ISO week containing ref, Monday through Sunday. Monthly is
// the first through the last calendar day of ref's month.
func PeriodRange(period Period, ref time.Time) (start, end string) {
	if period == PeriodMonthly {
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		return first.Format(dateLayout), last.Format(dateLayout)
	}
	monday := ref.AddDate(0, 0, -((int(ref.Weekday()) + 6) % 7))
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(dateLayout), sunday.Format(dateLayout)
}

// DatePart reduces an ISO-8601 instant to its calendar date.
func DatePart(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

// dateInRange does an inclusive lexicographic comparison; YYYY-MM-DD
// ordering matches calendar ordering.
func dateInRange(date, start, end string) bool {
	return date >= start && date <= end
}

// ReportData is everything ComputeReport needs, already fetched: the class's
// students, its attendance and behavior rows in range, every task of the
// class, and every reply to those tasks (unfiltered; the engine applies the
// date window itself).
type ReportData struct {
	Students   []Student
	Attendance []Attendance
	Behaviors  []Behavior
	Tasks      []Task
	Replies    []TaskReply
}

// ComputeReport is a pure function: it never mutates its inputs and never
// fails. Empty input yields a well-formed zeroed summary.
func ComputeReport(period Period, startDate, endDate string, data ReportData) Report {
	var present, absent, late int
	for _, a := range data.Attendance {
		switch a.Status {
		case AttendancePresent:
			present++
		case AttendanceAbsent:
			absent++
		case AttendanceLate:
			late++
		}
	}
	var rate int
	if total := len(data.Attendance); total > 0 {
		rate = int(math.Round(100 * float64(present) / float64(total)))
	}

	type score struct {
		praise, warn, points int
	}
	names := make(map[string]string, len(data.Students))
	scores := make(map[string]*score, len(data.Students))
	order := make([]string, 0, len(data.Students))
	for _, s := range data.Students {
		names[s.ID] = s.FullName
		scores[s.ID] = &score{}
		order = append(order, s.ID)
	}
	for _, b := range data.Behaviors {
		sc, ok := scores[b.StudentID]
		if !ok {
			continue // not in this class
		}
		if b.Type == BehaviorPraise {
			sc.praise++
			sc.points += b.Points
		} else {
			sc.warn++
			sc.points -= b.Points
		}
	}

	// Rank, slice to 3, then drop zero-activity entries: a student inside
	// the top 3 by net points but without a single praise must not appear.
	byPoints := append([]string(nil), order...)
	sort.SliceStable(byPoints, func(i, j int) bool {
		a, b := scores[byPoints[i]], scores[byPoints[j]]
		if a.points != b.points {
			return a.points > b.points
		}
		return names[byPoints[i]] < names[byPoints[j]]
	})
	topPraised := make([]PraiseRank, 0, 3)
	for _, id := range top3(byPoints) {
		if sc := scores[id]; sc.praise > 0 {
			topPraised = append(topPraised, PraiseRank{StudentName: names[id], Count: sc.praise, Points: sc.points})
		}
	}

	byWarns := append([]string(nil), order...)
	sort.SliceStable(byWarns, func(i, j int) bool {
		a, b := scores[byWarns[i]], scores[byWarns[j]]
		if a.warn != b.warn {
			return a.warn > b.warn
		}
		return names[byWarns[i]] < names[byWarns[j]]
	})
	topWarned := make([]WarnRank, 0, 3)
	for _, id := range top3(byWarns) {
		if sc := scores[id]; sc.warn > 0 {
			topWarned = append(topWarned, WarnRank{StudentName: names[id], Count: sc.warn})
		}
	}

	var tasksDue int
	taskIDs := make(map[string]bool, len(data.Tasks))
	for _, t := range data.Tasks {
		taskIDs[t.ID] = true
		if dateInRange(t.DueDate, startDate, endDate) {
			tasksDue++
		}
	}
	var replies int
	for _, r := range data.Replies {
		if taskIDs[r.TaskID] && dateInRange(DatePart(r.CreatedAt), startDate, endDate) {
			replies++
		}
	}

	return Report{
		Period:    period,
		StartDate: startDate,
		EndDate:   endDate,
		Summary: ReportSummary{
			AttendanceRate: rate,
			AbsentCount:    absent,
			LateCount:      late,
			TopPraised:     topPraised,
			TopWarned:      topWarned,
			TasksDueCount:  tasksDue,
			RepliesCount:   replies,
		},
	}
}

func top3(ids []string) []string {
	if len(ids) > 3 {
		return ids[:3]
	}
	return ids
}

// ComputeDashboardStats rolls up the landing-screen numbers. The weekly
// attendance rate defaults to 100 when no attendance exists yet.
func ComputeDashboardStats(students []Student, announcements []Announcement, attendance []Attendance, behaviors []Behavior, tasks []Task) DashboardStats {
	rate := 100
	if len(attendance) > 0 {
		var present int
		for _, a := range attendance {
			if a.Status == AttendancePresent {
				present++
			}
		}
		rate = int(math.Round(100 * float64(present) / float64(len(attendance))))
	}
	var praisePoints, warnings int
	for _, b := range behaviors {
		if b.Type == BehaviorPraise {
			praisePoints += b.Points
		} else {
			warnings++
		}
	}
	return DashboardStats{
		TotalStudents:        len(students),
		WeeklyAttendanceRate: rate,
		NewAnnouncements:     len(announcements),
		PendingTasks:         len(tasks),
		TotalPraisePoints:    praisePoints,
		TotalWarnings:        warnings,
	}
}
