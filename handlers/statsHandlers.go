package handlers

import (
	"net/http"

	"wbs-dashboard/models"
	"wbs-dashboard/stats"
)

// CategoryStatsHandler returns the per-category rollups in first-appearance
// order; consumers re-sort for display
func CategoryStatsHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := models.ListTasks(db)
	if err != nil {
		writeError(w, err, "Failed to list tasks for category stats")
		return
	}
	writeJSON(w, http.StatusOK, stats.ComputeCategoryStats(tasks))
}

// AssigneeStatsHandler returns the per-assignee rollups; tasks without an
// assignee contribute to no entry
func AssigneeStatsHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := models.ListTasks(db)
	if err != nil {
		writeError(w, err, "Failed to list tasks for assignee stats")
		return
	}
	writeJSON(w, http.StatusOK, stats.ComputeAssigneeStats(tasks))
}
