package models

import "time"

// Attachment upload lifecycle states.
const (
	UploadStatusPending   = "pending"
	UploadStatusCompleted = "completed"
)

// Attachment is the single optional S3-stored object of a post. The row is
// created when an upload slot is issued and flipped to completed once the
// client confirms the presigned PUT.
type Attachment struct {
	PostID       string    `json:"postId"`
	AuthorID     string    `json:"-"`
	StorageKey   string    `json:"-"`
	ContentType  string    `json:"contentType"`
	UploadStatus string    `json:"uploadStatus"`
	CreatedAt    time.Time `json:"createdAt"`
}
