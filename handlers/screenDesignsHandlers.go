package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"wbs-dashboard/models"
	"wbs-dashboard/utilities"
)

const (
	maxUploadSize = 50 * 1024 * 1024 // per file
	// memory budget for multipart parsing; larger bodies spill to temp files
	multipartMemory = 32 << 20
)

var allowedUploadExtensions = map[string]bool{
	".ppt":  true,
	".pptx": true,
}

// validateUploadFile enforces the type and size limits before any byte
// reaches the bucket
func validateUploadFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedUploadExtensions[ext] {
		return fmt.Errorf("%w: %s: only PPT or PPTX files can be uploaded", models.ErrInvalidInput, name)
	}
	if size > maxUploadSize {
		return fmt.Errorf("%w: %s: file size must be 50MB or less", models.ErrInvalidInput, name)
	}
	return nil
}

// ListScreenDesignsHandler lists every post with its files, newest post first
func ListScreenDesignsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := models.ListScreenDesignPosts(db)
	if err != nil {
		writeError(w, err, "Failed to list screen design posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreateScreenDesignHandler creates a post from a multipart form (title,
// content, author, files). Every file is validated before the first upload
// starts; a mid-loop failure rolls back already-uploaded objects.
func CreateScreenDesignHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		utilities.LogError(err, "Failed to parse multipart form")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := models.CreateScreenDesignInput{
		Title:  r.FormValue("title"),
		Author: r.FormValue("author"),
	}
	if content := strings.TrimSpace(r.FormValue("content")); content != "" {
		input.Content = &content
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	for _, fh := range headers {
		if err := validateUploadFile(fh.Filename, fh.Size); err != nil {
			writeError(w, err, "Upload validation failed")
			return
		}
	}

	files := make([]models.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			utilities.LogError(err, "Failed to open uploaded file")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		opened = append(opened, f)
		files = append(files, models.UploadFile{
			Name:   fh.Filename,
			Size:   fh.Size,
			Reader: f,
		})
	}

	post, err := models.CreateScreenDesignPost(r.Context(), db, bucket, input, files)
	if err != nil {
		writeError(w, err, "Failed to create screen design post")
		return
	}

	utilities.LogInfo("Screen design post created: %s (ID: %d, %d files)",
		post.Title, post.ID, len(post.Files))
	writeJSON(w, http.StatusCreated, post)
}

// DeleteScreenDesignHandler removes a post, its storage objects and (via
// cascade) its file rows
func DeleteScreenDesignHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := models.DeleteScreenDesignPost(r.Context(), db, bucket, id); err != nil {
		writeError(w, err, "Failed to delete screen design post")
		return
	}

	utilities.LogInfo("Screen design post deleted: ID %d", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteScreenDesignFileHandler removes exactly one attachment
func DeleteScreenDesignFileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := models.DeleteScreenDesignFile(r.Context(), db, bucket, id); err != nil {
		writeError(w, err, "Failed to delete screen design file")
		return
	}

	utilities.LogInfo("Screen design file deleted: ID %d", id)
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", vars["id"])
	}
	return id, nil
}
