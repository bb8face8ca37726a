package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name      string
		period    Period
		ref       time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "weekly midweek",
			period:    PeriodWeekly,
			ref:       time.Date(2023, 11, 15, 10, 30, 0, 0, time.UTC), // Wednesday
			wantStart: "2023-11-13",
			wantEnd:   "2023-11-19",
		},
		{
			name:      "weekly on monday",
			period:    PeriodWeekly,
			ref:       time.Date(2023, 11, 13, 0, 0, 0, 0, time.UTC),
			wantStart: "2023-11-13",
			wantEnd:   "2023-11-19",
		},
		{
			name:      "weekly on sunday",
			period:    PeriodWeekly,
			ref:       time.Date(2023, 11, 19, 23, 0, 0, 0, time.UTC),
			wantStart: "2023-11-13",
			wantEnd:   "2023-11-19",
		},
		{
			name:      "weekly spanning month boundary",
			period:    PeriodWeekly,
			ref:       time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), // Friday
			wantStart: "2023-11-27",
			wantEnd:   "2023-12-03",
		},
		{
			name:      "monthly",
			period:    PeriodMonthly,
			ref:       time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC),
			wantStart: "2023-11-01",
			wantEnd:   "2023-11-30",
		},
		{
			name:      "monthly february non-leap",
			period:    PeriodMonthly,
			ref:       time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: "2023-02-01",
			wantEnd:   "2023-02-28",
		},
		{
			name:      "monthly february leap",
			period:    PeriodMonthly,
			ref:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodRange(tt.period, tt.ref)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestComputeReport_EmptyData(t *testing.T) {
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", ReportData{})

	assert.Equal(t, PeriodWeekly, got.Period)
	assert.Equal(t, "2023-11-13", got.StartDate)
	assert.Equal(t, "2023-11-19", got.EndDate)
	assert.Equal(t, 0, got.Summary.AttendanceRate)
	assert.Equal(t, 0, got.Summary.AbsentCount)
	assert.Equal(t, 0, got.Summary.LateCount)
	assert.Empty(t, got.Summary.TopPraised)
	assert.Empty(t, got.Summary.TopWarned)
}

func TestComputeReport_AttendanceRate(t *testing.T) {
	data := ReportData{
		Attendance: []Attendance{
			{Status: AttendancePresent},
			{Status: AttendancePresent},
			{Status: AttendanceAbsent},
			{Status: AttendanceLate},
		},
	}
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", data)

	assert.Equal(t, 50, got.Summary.AttendanceRate)
	assert.Equal(t, 1, got.Summary.AbsentCount)
	assert.Equal(t, 1, got.Summary.LateCount)
}

func TestComputeReport_Leaderboards(t *testing.T) {
	students := []Student{
		{ID: "s1", FullName: "An"},
		{ID: "s2", FullName: "Binh"},
		{ID: "s3", FullName: "Chi"},
		{ID: "s4", FullName: "Dung"},
	}
	behaviors := []Behavior{
		{StudentID: "s1", Type: BehaviorPraise, Points: 10},
		{StudentID: "s1", Type: BehaviorPraise, Points: 5},
		{StudentID: "s2", Type: BehaviorPraise, Points: 8},
		// s3 has zero behaviors: top 3 by points, but no praise, so filtered out.
		{StudentID: "s4", Type: BehaviorWarn, Points: 3},
		{StudentID: "s4", Type: BehaviorWarn, Points: 2},
		// behavior of someone not in the class is ignored
		{StudentID: "ghost", Type: BehaviorPraise, Points: 100},
	}
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", ReportData{
		Students:  students,
		Behaviors: behaviors,
	})

	require.Len(t, got.Summary.TopPraised, 2)
	assert.Equal(t, PraiseRank{StudentName: "An", Count: 2, Points: 15}, got.Summary.TopPraised[0])
	assert.Equal(t, PraiseRank{StudentName: "Binh", Count: 1, Points: 8}, got.Summary.TopPraised[1])

	require.Len(t, got.Summary.TopWarned, 1)
	assert.Equal(t, WarnRank{StudentName: "Dung", Count: 2}, got.Summary.TopWarned[0])
}

func TestComputeReport_TieBrokenByName(t *testing.T) {
	students := []Student{
		{ID: "s1", FullName: "Binh"},
		{ID: "s2", FullName: "An"},
	}
	behaviors := []Behavior{
		{StudentID: "s1", Type: BehaviorPraise, Points: 5},
		{StudentID: "s2", Type: BehaviorPraise, Points: 5},
	}
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", ReportData{
		Students:  students,
		Behaviors: behaviors,
	})

	require.Len(t, got.Summary.TopPraised, 2)
	assert.Equal(t, "An", got.Summary.TopPraised[0].StudentName)
	assert.Equal(t, "Binh", got.Summary.TopPraised[1].StudentName)
}

func TestComputeReport_TopPraisedCapAtThree(t *testing.T) {
	students := []Student{
		{ID: "s1", FullName: "An"},
		{ID: "s2", FullName: "Binh"},
		{ID: "s3", FullName: "Chi"},
		{ID: "s4", FullName: "Dung"},
	}
	behaviors := []Behavior{
		{StudentID: "s1", Type: BehaviorPraise, Points: 4},
		{StudentID: "s2", Type: BehaviorPraise, Points: 3},
		{StudentID: "s3", Type: BehaviorPraise, Points: 2},
		{StudentID: "s4", Type: BehaviorPraise, Points: 1},
	}
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", ReportData{
		Students:  students,
		Behaviors: behaviors,
	})

	require.Len(t, got.Summary.TopPraised, 3)
	assert.Equal(t, "An", got.Summary.TopPraised[0].StudentName)
	assert.Equal(t, "Chi", got.Summary.TopPraised[2].StudentName)
}

func TestComputeReport_TasksAndReplies(t *testing.T) {
	data := ReportData{
		Tasks: []Task{
			{ID: "t1", DueDate: "2023-11-15"},
			{ID: "t2", DueDate: "2023-11-25"}, // outside window
			{ID: "t3", DueDate: "2023-11-19"}, // inclusive end
		},
		Replies: []TaskReply{
			{TaskID: "t1", CreatedAt: "2023-11-14T08:00:00Z"},
			{TaskID: "t2", CreatedAt: "2023-11-16T08:00:00Z"}, // counted: reply date in window
			{TaskID: "t1", CreatedAt: "2023-11-20T08:00:00Z"}, // reply after window
			{TaskID: "unknown", CreatedAt: "2023-11-14T08:00:00Z"},
		},
	}
	got := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", data)

	assert.Equal(t, 2, got.Summary.TasksDueCount)
	assert.Equal(t, 2, got.Summary.RepliesCount)
}

func TestComputeReport_DoesNotMutateInput(t *testing.T) {
	students := []Student{
		{ID: "s1", FullName: "Binh"},
		{ID: "s2", FullName: "An"},
	}
	behaviors := []Behavior{
		{StudentID: "s1", Type: BehaviorPraise, Points: 1},
		{StudentID: "s2", Type: BehaviorPraise, Points: 2},
	}
	data := ReportData{Students: students, Behaviors: behaviors}

	first := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", data)
	second := ComputeReport(PeriodWeekly, "2023-11-13", "2023-11-19", data)

	assert.Equal(t, first, second)
	assert.Equal(t, "s1", students[0].ID) // order untouched
}

func TestComputeDashboardStats(t *testing.T) {
	t.Run("no attendance defaults to 100", func(t *testing.T) {
		got := ComputeDashboardStats(nil, nil, nil, nil, nil)
		assert.Equal(t, 100, got.WeeklyAttendanceRate)
		assert.Equal(t, 0, got.TotalStudents)
	})

	t.Run("rollup", func(t *testing.T) {
		got := ComputeDashboardStats(
			[]Student{{ID: "s1"}, {ID: "s2"}},
			[]Announcement{{ID: "a1"}},
			[]Attendance{{Status: AttendancePresent}, {Status: AttendanceAbsent}},
			[]Behavior{
				{Type: BehaviorPraise, Points: 5},
				{Type: BehaviorPraise, Points: 3},
				{Type: BehaviorWarn, Points: 2},
			},
			[]Task{{ID: "t1"}},
		)
		assert.Equal(t, DashboardStats{
			TotalStudents:        2,
			WeeklyAttendanceRate: 50,
			NewAnnouncements:     1,
			PendingTasks:         1,
			TotalPraisePoints:    8,
			TotalWarnings:        1,
		}, got)
	})
}
