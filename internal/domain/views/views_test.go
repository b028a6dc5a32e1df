package views

import (
	"testing"
	"time"

	"github.com/studytracker/core/internal/domain/entities"
)

func completedAt(t time.Time) *time.Time { return &t }

func fixtureTasks(now time.Time) []entities.Task {
	return []entities.Task{
		{
			ID: 1, Title: "Integrals worksheet", Subject: "Math",
			Priority: entities.PriorityHigh, EstimatedTime: 60,
			DueDate: "2026-03-01", CreatedAt: now.Add(-4 * time.Hour),
		},
		{
			ID: 2, Title: "Read chapter 4", Subject: "History",
			Priority: entities.PriorityLow, EstimatedTime: 30,
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID: 3, Title: "Math vocabulary drill", Subject: "Math",
			Priority: entities.PriorityMedium, EstimatedTime: 20,
			DueDate: "2026-02-01", Completed: true,
			CompletedAt: completedAt(now.Add(-time.Hour)),
			CreatedAt:   now.Add(-2 * time.Hour), TimeSpent: 25,
		},
		{
			ID: 4, Title: "Lab report", Subject: "Chemistry",
			Priority: entities.PriorityHigh, EstimatedTime: 90,
			DueDate: "2026-05-01", CreatedAt: now.Add(-time.Hour),
		},
	}
}

func TestApplyFilterIntersection(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	tasks := fixtureTasks(now)

	tests := []struct {
		name    string
		q       Query
		wantIDs []int64
	}{
		{"no filters", Query{}, []int64{1, 2, 3, 4}},
		{"all sentinels", Query{Subject: FilterAll, Priority: FilterAll, Status: FilterAll}, []int64{1, 2, 3, 4}},
		{"subject only", Query{Subject: "Math"}, []int64{1, 3}},
		{"priority only", Query{Priority: "high"}, []int64{1, 4}},
		{"status pending", Query{Status: StatusPending}, []int64{1, 2, 4}},
		{"status completed", Query{Status: StatusCompleted}, []int64{3}},
		{"search matches title", Query{Search: "worksheet"}, []int64{1}},
		{"search matches subject case-insensitive", Query{Search: "math"}, []int64{1, 3}},
		{"subject and priority and status", Query{Subject: "Math", Priority: "high", Status: StatusPending}, []int64{1}},
		{"search excludes non-matching subject", Query{Search: "math", Subject: "History"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tasks, tt.q)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Apply() returned %d tasks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("Apply()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestApplySortByPriority(t *testing.T) {
	now := time.Now()
	tasks := fixtureTasks(now)

	got := Apply(tasks, Query{SortBy: SortByPriority})

	wantIDs := []int64{1, 4, 3, 2} // high, high (stable), medium, low
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("sorted[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestApplySortByDueDateEmptyLast(t *testing.T) {
	now := time.Now()
	tasks := fixtureTasks(now)

	got := Apply(tasks, Query{SortBy: SortByDueDate})

	wantIDs := []int64{3, 1, 4, 2} // dated ascending, undated last
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("sorted[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestApplySortBySubject(t *testing.T) {
	now := time.Now()
	got := Apply(fixtureTasks(now), Query{SortBy: SortBySubject})

	wantIDs := []int64{4, 2, 1, 3} // Chemistry, History, Math, Math (stable)
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("sorted[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestApplySortByCreatedNewestFirst(t *testing.T) {
	now := time.Now()
	got := Apply(fixtureTasks(now), Query{SortBy: SortByCreated})

	wantIDs := []int64{4, 3, 2, 1}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("sorted[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	tasks := fixtureTasks(now)

	Apply(tasks, Query{SortBy: SortByPriority})

	for i, id := range []int64{1, 2, 3, 4} {
		if tasks[i].ID != id {
			t.Fatalf("input order changed at %d: got %d", i, tasks[i].ID)
		}
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	tasks := fixtureTasks(now)

	got := Compute(tasks, now)

	want := Stats{
		Total:          4,
		Completed:      1,
		Pending:        3,
		HighPriority:   2, // pending high-priority only
		Overdue:        1, // task 1; task 3 is past due but completed
		TotalTimeSpent: 25,
	}
	if got != want {
		t.Errorf("Compute() = %+v, want %+v", got, want)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	got := Compute(nil, time.Now())
	if got != (Stats{}) {
		t.Errorf("Compute(nil) = %+v, want zero stats", got)
	}
}

func TestSubjectProgress(t *testing.T) {
	now := time.Now()
	tasks := fixtureTasks(now)
	subjects := []string{"Math", "History", "Biology"}

	got := SubjectProgress(tasks, subjects)

	if len(got) != 3 {
		t.Fatalf("SubjectProgress() returned %d entries, want 3", len(got))
	}
	if got[0].Subject != "Math" || got[0].Total != 2 || got[0].Completed != 1 || got[0].Percent != 50 {
		t.Errorf("Math entry = %+v", got[0])
	}
	if got[1].Subject != "History" || got[1].Total != 1 || got[1].Completed != 0 || got[1].Percent != 0 {
		t.Errorf("History entry = %+v", got[1])
	}
	if got[2].Subject != "Biology" || got[2].Total != 0 || got[2].Percent != 0 {
		t.Errorf("Biology entry = %+v", got[2])
	}
}

func TestRecentActivity(t *testing.T) {
	now := time.Now()
	var tasks []entities.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, entities.Task{
			ID:          int64(i + 1),
			Completed:   true,
			CompletedAt: completedAt(now.Add(time.Duration(i) * time.Minute)),
		})
	}
	tasks = append(tasks, entities.Task{ID: 100}) // pending, excluded

	got := RecentActivity(tasks, 5)

	if len(got) != 5 {
		t.Fatalf("RecentActivity() returned %d tasks, want 5", len(got))
	}
	for i, id := range []int64{8, 7, 6, 5, 4} {
		if got[i].ID != id {
			t.Errorf("activity[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestInsights(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	yesterday := now.Add(-24 * time.Hour)

	tasks := []entities.Task{
		{ID: 1, EstimatedTime: 45, Completed: true, CompletedAt: &now},
		{ID: 2, EstimatedTime: 30, Completed: true, CompletedAt: &yesterday},
		{ID: 3, EstimatedTime: 60},
	}

	got := Insights(tasks, now)

	want := Summary{
		CompletionRate: 67, // round(2/3*100)
		MinutesStudied: 75,
		CompletedToday: 1,
	}
	if got != want {
		t.Errorf("Insights() = %+v, want %+v", got, want)
	}
}

func TestInsightsEmpty(t *testing.T) {
	got := Insights(nil, time.Now())
	if got != (Summary{}) {
		t.Errorf("Insights(nil) = %+v, want zero summary", got)
	}
}
