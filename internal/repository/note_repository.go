package repository

import (
	"context"
	"errors"
	"fmt"

	"notable-server/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepository persists notes. Every statement that reads or mutates an
// existing row filters by user id; an id belonging to another user behaves
// exactly like a missing row. Mutations report the number of rows affected
// so callers can treat zero-row updates and deletes as no-ops.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, userID, id string) (*domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Note, error)
	Update(ctx context.Context, userID, id, title string, content *string) (int64, error)
	SetImagePath(ctx context.Context, userID, id, imagePath string) (int64, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (id, user_id, title, content, image_path)
		 VALUES ($1, $2, $3, $4, NULL)
		 RETURNING created_at`,
		note.ID, note.UserID, note.Title, note.Content,
	).Scan(&note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, userID, id string) (*domain.Note, error) {
	var note domain.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, image_path, created_at
		 FROM notes
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ImagePath, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, content, image_path, created_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ImagePath, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, userID, id, title string, content *string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2
		 WHERE id = $3 AND user_id = $4`,
		title, content, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update note: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *noteRepository) SetImagePath(ctx context.Context, userID, id, imagePath string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notes SET image_path = $1
		 WHERE id = $2 AND user_id = $3`,
		imagePath, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to set note image path: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete note: %w", err)
	}

	return tag.RowsAffected(), nil
}
