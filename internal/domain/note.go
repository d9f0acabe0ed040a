package domain

import "time"

// Note is one user-created note. Content and ImagePath are nullable in the
// store: blank content is persisted as NULL, and ImagePath stays NULL until
// an image is attached.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	ImagePath *string   `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse mirrors Note, except that image_path carries a short-lived
// signed URL when one could be minted for the stored object.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	ImagePath *string   `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateStage reports how far the create-with-image sequence got. A failure
// between stages leaves the note intact without an image; nothing is rolled
// back.
type CreateStage string

const (
	StageCreated       CreateStage = "created"
	StageImageUploaded CreateStage = "image_uploaded"
	StageImageAttached CreateStage = "image_attached"
)

type CreateNoteResult struct {
	Note       *NoteResponse `json:"note"`
	UserID     string        `json:"user_id"`
	Stage      CreateStage   `json:"stage"`
	ImageError string        `json:"image_error,omitempty"`
}
