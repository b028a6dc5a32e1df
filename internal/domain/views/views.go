// Package views derives presentation data from a task collection. Every
// function is pure: it reads the given tasks and never mutates them.
package views

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/studytracker/core/internal/domain/entities"
)

// Filter values accepted by Query. "all" disables the corresponding
// predicate.
const (
	FilterAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Sort orders accepted by Query.
const (
	SortByDueDate  = "dueDate"
	SortByPriority = "priority"
	SortBySubject  = "subject"
	SortByCreated  = "created"
)

// Query is the transient filter, search and sort state of the task list
// view. The zero value of each filter field is treated as "all".
type Query struct {
	Search   string
	Subject  string
	Priority string
	Status   string
	SortBy   string
}

// Stats is the dashboard counter set.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	HighPriority   int `json:"highPriority"`
	Overdue        int `json:"overdue"`
	TotalTimeSpent int `json:"totalTimeSpent"`
}

// SubjectStat is one per-subject progress bar.
type SubjectStat struct {
	Subject   string  `json:"subject"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// Summary is the study-insights panel.
type Summary struct {
	CompletionRate int `json:"completionRate"`
	MinutesStudied int `json:"minutesStudied"`
	CompletedToday int `json:"completedToday"`
}

// Apply filters and sorts tasks for display. Filtering is the intersection
// of four independent predicates; sorting is stable so equal elements keep
// their collection order.
func Apply(tasks []entities.Task, q Query) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(&t, q) {
			out = append(out, t)
		}
	}

	switch q.SortBy {
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			di, iok := out[i].DueTime()
			dj, jok := out[j].DueTime()
			if iok != jok {
				return iok // tasks without a due date sort last
			}
			if !iok {
				return false
			}
			return di.Before(dj)
		})
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortBySubject:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Subject < out[j].Subject
		})
	case SortByCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func matches(t *entities.Task, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Subject), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	if q.Subject != "" && q.Subject != FilterAll && t.Subject != q.Subject {
		return false
	}
	if q.Priority != "" && q.Priority != FilterAll && string(t.Priority) != q.Priority {
		return false
	}
	switch q.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}
	return true
}

// Compute derives the dashboard counters.
func Compute(tasks []entities.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else if t.Priority == entities.PriorityHigh {
			s.HighPriority++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
		s.TotalTimeSpent += t.TimeSpent
	}
	s.Pending = s.Total - s.Completed
	return s
}

// SubjectProgress derives the per-subject completion bars, one entry per
// registered subject in registry order.
func SubjectProgress(tasks []entities.Task, subjects []string) []SubjectStat {
	stats := make([]SubjectStat, 0, len(subjects))
	for _, subject := range subjects {
		st := SubjectStat{Subject: subject}
		for _, t := range tasks {
			if t.Subject != subject {
				continue
			}
			st.Total++
			if t.Completed {
				st.Completed++
			}
		}
		if st.Total > 0 {
			st.Percent = float64(st.Completed) / float64(st.Total) * 100
		}
		stats = append(stats, st)
	}
	return stats
}

// RecentActivity returns the n most recently completed tasks, newest
// first.
func RecentActivity(tasks []entities.Task, n int) []entities.Task {
	done := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].CompletedAt.After(*done[j].CompletedAt)
	})
	if len(done) > n {
		done = done[:n]
	}
	return done
}

// Insights derives the summary panel: completion rate, minutes studied
// across completed tasks, and tasks completed on the current day.
func Insights(tasks []entities.Task, now time.Time) Summary {
	var sum Summary
	completed := 0
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		completed++
		sum.MinutesStudied += t.EstimatedTime
		if t.CompletedAt != nil && sameDay(*t.CompletedAt, now) {
			sum.CompletedToday++
		}
	}
	total := len(tasks)
	if total < 1 {
		total = 1
	}
	sum.CompletionRate = int(math.Round(float64(completed) / float64(total) * 100))
	return sum
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
