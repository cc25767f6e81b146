package dto

// DocumentSummary is the per-document view-model. The download URL is
// keyed by the generated storage key, never the display filename.
type DocumentSummary struct {
	ID         uint   `json:"id"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploaded_at"`
	UploaderID uint   `json:"uploader_id"`
}
