package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"notable-server/internal/cache"
	"notable-server/internal/domain"
	"notable-server/internal/repository"
	"notable-server/internal/storage"

	"github.com/google/uuid"
)

// ListingNotifier pushes a stale-listing signal to the owner's connected
// clients after a successful mutation.
type ListingNotifier interface {
	NotesInvalidated(userID string)
}

// ImageUpload carries one image file through the create or attach flow.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

type NoteService struct {
	repo         repository.NoteRepository
	store        storage.ObjectStorage
	cache        cache.ListingCache
	notifier     ListingNotifier
	signedURLTTL time.Duration
}

func NewNoteService(
	repo repository.NoteRepository,
	store storage.ObjectStorage,
	listingCache cache.ListingCache,
	notifier ListingNotifier,
	signedURLTTL time.Duration,
) *NoteService {
	return &NoteService{
		repo:         repo,
		store:        store,
		cache:        listingCache,
		notifier:     notifier,
		signedURLTTL: signedURLTTL,
	}
}

// Create runs the create -> upload -> attach sequence. The returned result
// reports the stage reached; a failure after the note row exists keeps the
// note (without an image) and carries the image error in the result rather
// than failing the call.
func (s *NoteService) Create(ctx context.Context, userID string, req *domain.CreateNoteRequest, image *ImageUpload) (*domain.CreateNoteResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	note := &domain.Note{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Content: trimOrNil(req.Content),
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx, userID)

	result := &domain.CreateNoteResult{
		Note:   toResponse(note),
		UserID: userID,
		Stage:  domain.StageCreated,
	}

	if image == nil {
		return result, nil
	}

	objectPath := storage.ObjectPath(userID, note.ID, image.Filename)
	if err := s.store.Upload(ctx, objectPath, image.Data, image.Size, image.ContentType); err != nil {
		result.ImageError = err.Error()
		return result, nil
	}
	result.Stage = domain.StageImageUploaded

	if _, err := s.repo.SetImagePath(ctx, userID, note.ID, objectPath); err != nil {
		result.ImageError = err.Error()
		return result, nil
	}
	result.Stage = domain.StageImageAttached
	result.Note.ImagePath = &objectPath
	s.invalidateListing(ctx, userID)

	return result, nil
}

// List returns the caller's notes, newest first. Stored image paths are
// swapped for signed URLs; when signing fails the raw path is kept and the
// listing still succeeds.
func (s *NoteService) List(ctx context.Context, userID string) ([]*domain.NoteResponse, error) {
	notes, ok := s.cache.Get(ctx, userID)
	if !ok {
		var err error
		notes, err = s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, userID, notes)
	}

	responses := make([]*domain.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, s.resolveImage(ctx, toResponse(note)))
	}

	return responses, nil
}

func (s *NoteService) GetByID(ctx context.Context, userID, noteID string) (*domain.NoteResponse, error) {
	note, err := s.repo.FindByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return s.resolveImage(ctx, toResponse(note)), nil
}

// Update changes title and content of the caller's note. An id the caller
// does not own matches zero rows and reports success, leaking nothing about
// other users' notes.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, req *domain.UpdateNoteRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ErrTitleRequired
	}

	if _, err := s.repo.Update(ctx, userID, noteID, title, trimOrNil(req.Content)); err != nil {
		return err
	}
	s.invalidateListing(ctx, userID)

	return nil
}

// Delete is idempotent: deleting a missing or already-deleted note matches
// zero rows and reports success.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.repo.Delete(ctx, userID, noteID); err != nil {
		return err
	}
	s.invalidateListing(ctx, userID)

	return nil
}

// AttachImage uploads an image for an existing owned note and patches its
// image path. Returns the stored object path.
func (s *NoteService) AttachImage(ctx context.Context, userID, noteID string, image *ImageUpload) (string, error) {
	note, err := s.repo.FindByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoteNotFound
		}
		return "", err
	}

	objectPath := storage.ObjectPath(userID, note.ID, image.Filename)
	if err := s.store.Upload(ctx, objectPath, image.Data, image.Size, image.ContentType); err != nil {
		return "", err
	}

	if _, err := s.repo.SetImagePath(ctx, userID, noteID, objectPath); err != nil {
		return "", err
	}
	s.invalidateListing(ctx, userID)

	return objectPath, nil
}

func (s *NoteService) invalidateListing(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, userID)
	if s.notifier != nil {
		s.notifier.NotesInvalidated(userID)
	}
}

func (s *NoteService) resolveImage(ctx context.Context, resp *domain.NoteResponse) *domain.NoteResponse {
	if resp.ImagePath == nil {
		return resp
	}

	signed, err := s.store.SignedURL(ctx, *resp.ImagePath, s.signedURLTTL)
	if err != nil {
		log.Printf("failed to sign image url for note %s: %v", resp.ID, err)
		return resp
	}
	resp.ImagePath = &signed

	return resp
}

func toResponse(note *domain.Note) *domain.NoteResponse {
	return &domain.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		ImagePath: note.ImagePath,
		CreatedAt: note.CreatedAt,
	}
}

func trimOrNil(content string) *string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
