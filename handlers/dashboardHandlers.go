package handlers

import (
	"net/http"

	"github.com/sourcegraph/conc"

	"wbs-dashboard/models"
	"wbs-dashboard/stats"
)

type overviewResponse struct {
	Overview      stats.Overview        `json:"overview"`
	Tasks         []models.Task         `json:"tasks"`
	CategoryStats []stats.CategoryStats `json:"categoryStats"`
	AssigneeStats []stats.AssigneeStats `json:"assigneeStats"`
	Assignees     []string              `json:"assignees"`
	Categories    []string              `json:"categories"`
}

// DashboardOverviewHandler backs the initial page load: the three
// independent reads run concurrently and the response is assembled once all
// of them finish
func DashboardOverviewHandler(w http.ResponseWriter, r *http.Request) {
	var (
		tasks      []models.Task
		assignees  []string
		categories []string

		tasksErr, assigneesErr, categoriesErr error
	)

	wg := conc.NewWaitGroup()
	wg.Go(func() { tasks, tasksErr = models.ListTasks(db) })
	wg.Go(func() { assignees, assigneesErr = models.ListAssignees(db) })
	wg.Go(func() { categories, categoriesErr = models.ListCategories(db) })
	wg.Wait()

	for _, err := range []error{tasksErr, assigneesErr, categoriesErr} {
		if err != nil {
			writeError(w, err, "Failed to load dashboard overview")
			return
		}
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Overview:      stats.ComputeOverview(tasks),
		Tasks:         tasks,
		CategoryStats: stats.ComputeCategoryStats(tasks),
		AssigneeStats: stats.ComputeAssigneeStats(tasks),
		Assignees:     assignees,
		Categories:    categories,
	})
}
