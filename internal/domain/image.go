package domain

import "time"

type Image struct {
	ID          int64          `json:"id"`
	Filename    string         `json:"filename"`
	Path        string         `json:"path"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Variants    []ImageVariant `json:"variants"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ImageVariant is a resized copy produced by the background worker.
type ImageVariant struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Path   string `json:"path"`
}
