package models

import "errors"

var (
	// ErrInvalidInput marks validation failures raised before any SQL is issued
	ErrInvalidInput = errors.New("invalid input")

	ErrTaskNotFound = errors.New("task not found")
	ErrPostNotFound = errors.New("screen design post not found")
	ErrFileNotFound = errors.New("screen design file not found")
)
