package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"wbs-dashboard/models"
	"wbs-dashboard/storage"
	"wbs-dashboard/utilities"
)

var (
	db     *sql.DB
	bucket *storage.Bucket
)

// Init hands the handlers their shared database and bucket handles
func Init(database *sql.DB, b *storage.Bucket) {
	db = database
	bucket = b
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utilities.LogError(err, "Failed to encode JSON response")
	}
}

// writeError maps an error to its status code and surfaces the message to
// the caller, which displays it inline
func writeError(w http.ResponseWriter, err error, context string) {
	utilities.LogError(err, context)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrPostNotFound),
		errors.Is(err, models.ErrFileNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
