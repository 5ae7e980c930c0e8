package handlers

import (
	"encoding/json"
	"net/http"

	"wbs-dashboard/models"
	"wbs-dashboard/utilities"
)

// ListTasksHandler lists every task, or one assignee's tasks when the
// assignee query parameter is present. Ordering is by display number.
func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	assignee := r.URL.Query().Get("assignee")

	var tasks []models.Task
	var err error
	if assignee != "" {
		utilities.LogDebug("Listing tasks for assignee %q", assignee)
		tasks, err = models.ListTasksByAssignee(db, assignee)
	} else {
		utilities.LogDebug("Listing all tasks")
		tasks, err = models.ListTasks(db)
	}
	if err != nil {
		writeError(w, err, "Failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// CreateTaskHandler creates a task from the JSON body. Unset optional fields
// default to progress 0, status 대기중 and null text columns; num mirrors the
// assigned id.
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var input models.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Failed to decode task JSON")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := models.CreateTask(db, input)
	if err != nil {
		writeError(w, err, "Failed to create task")
		return
	}

	utilities.LogInfo("Task created: %s (ID: %d)", task.TaskTitle, task.ID)
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTaskHandler applies a partial update to one task. Only the fields
// present in the body change; updated_at is stamped on every call.
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utilities.LogError(err, "Failed to decode task update JSON")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := models.UpdateTask(db, id, fields)
	if err != nil {
		writeError(w, err, "Failed to update task")
		return
	}

	utilities.LogInfo("Task updated: ID %d", task.ID)
	writeJSON(w, http.StatusOK, task)
}

// DeleteTaskHandler permanently deletes one task
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := models.DeleteTask(db, id); err != nil {
		writeError(w, err, "Failed to delete task")
		return
	}

	utilities.LogInfo("Task deleted: ID %d", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListAssigneesHandler returns the distinct non-null assignee names
func ListAssigneesHandler(w http.ResponseWriter, r *http.Request) {
	assignees, err := models.ListAssignees(db)
	if err != nil {
		writeError(w, err, "Failed to list assignees")
		return
	}
	writeJSON(w, http.StatusOK, assignees)
}

// ListCategoriesHandler returns the distinct category names
func ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := models.ListCategories(db)
	if err != nil {
		writeError(w, err, "Failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type statusEntry struct {
	Status models.TaskStatus `json:"status"`
	Color  string            `json:"color"`
}

// ListStatusesHandler returns the status enumeration with its display colors
func ListStatusesHandler(w http.ResponseWriter, r *http.Request) {
	statuses := []statusEntry{}
	for _, s := range models.TaskStatusList {
		color, _ := s.Color()
		statuses = append(statuses, statusEntry{Status: s, Color: color})
	}
	writeJSON(w, http.StatusOK, statuses)
}
