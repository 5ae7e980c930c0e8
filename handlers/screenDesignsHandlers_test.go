package handlers

import (
	"errors"
	"testing"

	"wbs-dashboard/models"
)

func TestValidateUploadFile(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		size     int64
		wantErr  bool
	}{
		{"ppt allowed", "design.ppt", 1024, false},
		{"pptx allowed", "design.pptx", 1024, false},
		{"uppercase extension allowed", "DESIGN.PPTX", 1024, false},
		{"exactly 50MB allowed", "design.pptx", maxUploadSize, false},
		{"pdf rejected", "design.pdf", 1024, true},
		{"no extension rejected", "design", 1024, true},
		{"pptx in name but not extension", "design.pptx.exe", 1024, true},
		{"oversized rejected", "design.pptx", maxUploadSize + 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUploadFile(tc.fileName, tc.size)
			if tc.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}
