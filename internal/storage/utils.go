package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// SnapshotFolderPath generates a consistent folder path for one snapshot.
// Format: YYYY/MM/DD/Snapshot-YYYY-MM-DD-HH-MM-SS
func SnapshotFolderPath(timestamp time.Time) string {
	ts := timestamp.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/Snapshot-%s",
		ts.Year(), ts.Month(), ts.Day(), ts.Format("2006-01-02-15-04-05"))
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
