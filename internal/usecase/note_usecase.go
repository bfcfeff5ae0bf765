package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrInvalidNoteID     = errors.New("invalid note id")
	ErrInvalidNoteText   = errors.New("invalid note text")
	ErrInvalidNoteAuthor = errors.New("invalid note author")
)

type NoteInput struct {
	Text   string
	Author string
}

type INoteUseCase interface {
	AddNote(ctx context.Context, orderID string, in NoteInput) (entities.Order, error)
	UpdateNote(ctx context.Context, orderID, noteID, text string) (entities.Order, error)
	DeleteNote(ctx context.Context, orderID, noteID string) (entities.Order, error)
}

type NoteUseCase struct {
	repo interfaces.IOrderRepository
	now  func() time.Time
}

var _ INoteUseCase = (*NoteUseCase)(nil)

func NewNoteUseCase(repo interfaces.IOrderRepository) *NoteUseCase {
	return &NoteUseCase{repo: repo, now: time.Now}
}

func (u *NoteUseCase) AddNote(ctx context.Context, orderID string, in NoteInput) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return entities.Order{}, ErrInvalidNoteText
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		return entities.Order{}, ErrInvalidNoteAuthor
	}

	updated, err := u.repo.AppendNote(ctx, orderID, entities.Note{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Timestamp: u.now().UTC(),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return updated, nil
}

// UpdateNote replaces the note text; author and timestamp keep their original values.
func (u *NoteUseCase) UpdateNote(ctx context.Context, orderID, noteID, text string) (entities.Order, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Order{}, ErrInvalidNoteText
	}
	o, idx, err := u.findNote(ctx, orderID, noteID)
	if err != nil {
		return entities.Order{}, err
	}

	o.Notes[idx].Text = text
	return u.save(ctx, o)
}

func (u *NoteUseCase) DeleteNote(ctx context.Context, orderID, noteID string) (entities.Order, error) {
	o, idx, err := u.findNote(ctx, orderID, noteID)
	if err != nil {
		return entities.Order{}, err
	}

	o.Notes = append(o.Notes[:idx], o.Notes[idx+1:]...)
	return u.save(ctx, o)
}

func (u *NoteUseCase) findNote(ctx context.Context, orderID, noteID string) (entities.Order, int, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, -1, ErrInvalidOrderID
	}
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return entities.Order{}, -1, ErrInvalidNoteID
	}

	o, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, -1, err
	}
	if o.ID == "" {
		return entities.Order{}, -1, ErrOrderNotFound
	}
	idx := o.NoteIndex(noteID)
	if idx < 0 {
		return entities.Order{}, -1, ErrNoteNotFound
	}
	return o, idx, nil
}

func (u *NoteUseCase) save(ctx context.Context, o entities.Order) (entities.Order, error) {
	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Order{}, ErrConcurrentUpdate
		}
		return entities.Order{}, err
	}
	return saved, nil
}
