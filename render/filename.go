package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// DefaultFilenamePattern names CV downloads cv_<template>_<id8>.pdf.
const DefaultFilenamePattern = "cv_{{.Template}}_{{.ShortID}}"

type filenameData struct {
	Template  string
	ID        string
	ShortID   string
	Timestamp string
	Date      string
}

func renderFilename(pattern, templateName, renderID string, now time.Time) (string, error) {
	if pattern == "" {
		pattern = DefaultFilenamePattern
	}

	shortID := renderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	data := filenameData{
		Template:  templateName,
		ID:        renderID,
		ShortID:   shortID,
		Timestamp: now.UTC().Format("20060102T150405Z"),
		Date:      now.UTC().Format("20060102"),
	}

	tmpl, err := template.New("filename").Parse(pattern)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("empty filename")
	}

	if !strings.HasSuffix(strings.ToLower(result), ".pdf") {
		result += ".pdf"
	}
	return result, nil
}
