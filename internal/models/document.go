package models

// Document is a downloadable form template.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"fileName"`
	Available   bool   `json:"available"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
}
