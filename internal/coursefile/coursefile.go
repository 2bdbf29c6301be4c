// Package coursefile is the JSON list of course records a crawl produces and
// an ingestion consumes.
package coursefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"coursecatalog-backend/internal/scrapers/wesmaps"
)

// Write replaces the file at `path` with `courses` as an indented JSON list.
// The list is written to a temporary file next to `path` first, so a failed
// write leaves the previous file in place.
func Write(path string, courses []wesmaps.CourseRecord) error {
	if courses == nil {
		courses = []wesmaps.CourseRecord{}
	}

	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	err = encoder.Encode(courses)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("encode courses: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Read loads a list written by Write.
func Read(path string) ([]wesmaps.CourseRecord, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var courses []wesmaps.CourseRecord
	err = json.Unmarshal(buff, &courses)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return courses, nil
}
