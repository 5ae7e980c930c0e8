// Package stats computes the derived rollups shown on the dashboard. All
// functions are pure: they take the in-memory task list and group it, with
// no side effects and no errors on well-formed input.
//
// Classification reads only the numeric progress field: 0 is pending, 100 is
// completed, anything between is in progress. Status is deliberately ignored
// here — a 완료 task left at progress 0 counts as pending, matching the
// overview page's numeric-only filter counts.
package stats

import (
	"math"

	"wbs-dashboard/models"
)

type CategoryStats struct {
	Category   string `json:"category"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Pending    int    `json:"pending"`
	Progress   int    `json:"progress"`
}

type AssigneeStats struct {
	Assignee   string   `json:"assignee"`
	Total      int      `json:"total"`
	Completed  int      `json:"completed"`
	InProgress int      `json:"inProgress"`
	Pending    int      `json:"pending"`
	Progress   int      `json:"progress"`
	Categories []string `json:"categories"`
}

// Overview summarizes the whole task list for the dashboard header cards.
// The issue/bug/cancelled counts are the only place status is consulted.
type Overview struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	InProgress      int `json:"inProgress"`
	Pending         int `json:"pending"`
	Issues          int `json:"issues"`
	Bugs            int `json:"bugs"`
	Cancelled       int `json:"cancelled"`
	OverallProgress int `json:"overallProgress"`
}

// roundedMean is round-half-up of the arithmetic mean, 0 for an empty group
func roundedMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

type counters struct {
	total      int
	completed  int
	inProgress int
	pending    int
	sum        int
}

func (c *counters) add(progress int) {
	c.total++
	c.sum += progress
	switch {
	case progress == 100:
		c.completed++
	case progress == 0:
		c.pending++
	default:
		c.inProgress++
	}
}

// ComputeCategoryStats groups tasks by exact category string equality, in
// order of first appearance. An empty input yields an empty slice.
func ComputeCategoryStats(tasks []models.Task) []CategoryStats {
	order := []string{}
	groups := map[string]*counters{}

	for _, t := range tasks {
		g, ok := groups[t.Category]
		if !ok {
			g = &counters{}
			groups[t.Category] = g
			order = append(order, t.Category)
		}
		g.add(t.Progress)
	}

	result := []CategoryStats{}
	for _, category := range order {
		g := groups[category]
		result = append(result, CategoryStats{
			Category:   category,
			Total:      g.total,
			Completed:  g.completed,
			InProgress: g.inProgress,
			Pending:    g.pending,
			Progress:   roundedMean(g.sum, g.total),
		})
	}
	return result
}

// ComputeAssigneeStats groups tasks by assignee, in order of first
// appearance. Tasks without an assignee are excluded entirely. Each group
// carries the distinct categories of its tasks, duplicates removed,
// insertion order preserved.
func ComputeAssigneeStats(tasks []models.Task) []AssigneeStats {
	order := []string{}
	groups := map[string]*counters{}
	categories := map[string][]string{}
	seen := map[string]map[string]bool{}

	for _, t := range tasks {
		if t.Assignee == nil || *t.Assignee == "" {
			continue
		}
		assignee := *t.Assignee

		g, ok := groups[assignee]
		if !ok {
			g = &counters{}
			groups[assignee] = g
			order = append(order, assignee)
			seen[assignee] = map[string]bool{}
		}
		g.add(t.Progress)

		if !seen[assignee][t.Category] {
			seen[assignee][t.Category] = true
			categories[assignee] = append(categories[assignee], t.Category)
		}
	}

	result := []AssigneeStats{}
	for _, assignee := range order {
		g := groups[assignee]
		result = append(result, AssigneeStats{
			Assignee:   assignee,
			Total:      g.total,
			Completed:  g.completed,
			InProgress: g.inProgress,
			Pending:    g.pending,
			Progress:   roundedMean(g.sum, g.total),
			Categories: categories[assignee],
		})
	}
	return result
}

// ComputeOverview summarizes the full task list
func ComputeOverview(tasks []models.Task) Overview {
	var o Overview
	sum := 0
	for _, t := range tasks {
		o.Total++
		sum += t.Progress
		switch {
		case t.Progress == 100:
			o.Completed++
		case t.Progress == 0:
			o.Pending++
		default:
			o.InProgress++
		}
		switch t.Status {
		case models.StatusIssue:
			o.Issues++
		case models.StatusBug:
			o.Bugs++
		case models.StatusCancelled:
			o.Cancelled++
		}
	}
	o.OverallProgress = roundedMean(sum, o.Total)
	return o
}
