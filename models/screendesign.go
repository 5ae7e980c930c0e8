package models

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lib/pq"

	"wbs-dashboard/storage"
	"wbs-dashboard/utilities"
)

type ScreenDesignFile struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	FileURL   string    `json:"file_url"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

type ScreenDesignPost struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Content   *string            `json:"content"`
	Author    string             `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
	Files     []ScreenDesignFile `json:"files"`
}

type CreateScreenDesignInput struct {
	Title   string
	Content *string
	Author  string
}

// UploadFile is one attachment streamed from the request
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Validate checks the post fields before any upload starts
func (in *CreateScreenDesignInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	return nil
}

// ListScreenDesignPosts returns every post newest-first, each joined with its
// files in creation order
func ListScreenDesignPosts(db *sql.DB) ([]ScreenDesignPost, error) {
	query := `SELECT id, title, content, author, created_at
		FROM screen_design_posts ORDER BY created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query screen design posts: %w", err)
	}
	defer rows.Close()

	posts := []ScreenDesignPost{}
	postIDs := []int64{}
	for rows.Next() {
		var p ScreenDesignPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		p.Files = []ScreenDesignFile{}
		posts = append(posts, p)
		postIDs = append(postIDs, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	// Secondary query keyed by the post ids, grouped in memory
	fileQuery := `SELECT id, post_id, file_url, file_name, file_size, created_at
		FROM screen_design_files WHERE post_id = ANY($1) ORDER BY created_at ASC`

	fileRows, err := db.Query(fileQuery, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query screen design files: %w", err)
	}
	defer fileRows.Close()

	filesByPost := map[int64][]ScreenDesignFile{}
	for fileRows.Next() {
		var f ScreenDesignFile
		if err := fileRows.Scan(&f.ID, &f.PostID, &f.FileURL, &f.FileName, &f.FileSize, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		filesByPost[f.PostID] = append(filesByPost[f.PostID], f)
	}
	if err := fileRows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if files, ok := filesByPost[posts[i].ID]; ok {
			posts[i].Files = files
		}
	}
	return posts, nil
}

// CreateScreenDesignPost inserts the post row, uploads every file to the
// bucket and inserts its row. No transaction spans storage and database, so
// each completed step pushes an undo action; on failure the undo actions run
// in reverse before the error is returned.
func CreateScreenDesignPost(ctx context.Context, db *sql.DB, bucket *storage.Bucket, input CreateScreenDesignInput, files []UploadFile) (*ScreenDesignPost, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}

	var undo []func() error
	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			if err := undo[i](); err != nil {
				utilities.LogError(err, "Compensation step failed during screen design rollback")
			}
		}
	}

	post := ScreenDesignPost{
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Author:  strings.TrimSpace(input.Author),
		Files:   []ScreenDesignFile{},
	}

	err := db.QueryRow(
		`INSERT INTO screen_design_posts (title, content, author)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		post.Title, post.Content, post.Author,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert screen design post: %w", err)
	}
	undo = append(undo, func() error {
		_, err := db.Exec(`DELETE FROM screen_design_posts WHERE id = $1`, post.ID)
		return err
	})

	for _, f := range files {
		objectPath := storage.NewObjectPath(f.Name)

		url, err := bucket.Upload(ctx, objectPath, f.Reader)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("failed to upload %q: %w", f.Name, err)
		}
		undo = append(undo, func() error {
			return bucket.Delete(ctx, objectPath)
		})

		var file ScreenDesignFile
		file.PostID = post.ID
		file.FileURL = url
		file.FileName = f.Name
		file.FileSize = f.Size
		err = db.QueryRow(
			`INSERT INTO screen_design_files (post_id, file_url, file_name, file_size)
			VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
			file.PostID, file.FileURL, file.FileName, file.FileSize,
		).Scan(&file.ID, &file.CreatedAt)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("failed to insert file row for %q: %w", f.Name, err)
		}
		post.Files = append(post.Files, file)
	}

	return &post, nil
}

// DeleteScreenDesignPost removes every file object from the bucket (best
// effort) and then the post row. File rows are removed by the ON DELETE
// CASCADE on screen_design_files, not here.
func DeleteScreenDesignPost(ctx context.Context, db *sql.DB, bucket *storage.Bucket, id int64) error {
	rows, err := db.Query(
		`SELECT file_url FROM screen_design_files WHERE post_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to query files of post %d: %w", id, err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return fmt.Errorf("failed to scan file URL: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, url := range urls {
		objectPath, err := bucket.ObjectPathFromURL(url)
		if err != nil {
			utilities.LogError(err, "Skipping storage object with foreign URL")
			continue
		}
		if err := bucket.Delete(ctx, objectPath); err != nil {
			utilities.LogError(err, "Failed to delete storage object while removing post")
		}
	}

	result, err := db.Exec(`DELETE FROM screen_design_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete screen design post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeleteScreenDesignFile removes exactly one file's storage object and row,
// leaving the post and its other files intact
func DeleteScreenDesignFile(ctx context.Context, db *sql.DB, bucket *storage.Bucket, id int64) error {
	var url string
	err := db.QueryRow(
		`SELECT file_url FROM screen_design_files WHERE id = $1`, id).Scan(&url)
	if err == sql.ErrNoRows {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query screen design file: %w", err)
	}

	objectPath, err := bucket.ObjectPathFromURL(url)
	if err != nil {
		return err
	}
	if err := bucket.Delete(ctx, objectPath); err != nil {
		return err
	}

	if _, err := db.Exec(`DELETE FROM screen_design_files WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete file row: %w", err)
	}
	return nil
}
