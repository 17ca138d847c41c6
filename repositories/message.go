//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"chat-sync/domain"
	apperrors "chat-sync/errors"
)

type IMessageRepository interface {
	FetchHistory(ctx context.Context, target domain.Target) ([]domain.RawMessageRow, error)
	InsertMessage(ctx context.Context, row domain.RawMessageRow) (domain.RawMessageRow, error)
}

type MessageRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewMessageRepository(db *sql.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// FetchHistory returns the full message history for a target in
// chronological order. Direct conversations and groups are stored in
// the same table, discriminated by which id column is set.
func (r MessageRepository) FetchHistory(ctx context.Context, target domain.Target) ([]domain.RawMessageRow, error) {
	query := `
		SELECT id, COALESCE(conversation_id, ''), COALESCE(group_id, ''),
		       sender_id, COALESCE(transcription, ''), COALESCE(file_url, ''),
		       COALESCE(duration_ms, 0), created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`
	if target.Kind == domain.GroupTarget {
		query = `
		SELECT id, COALESCE(conversation_id, ''), COALESCE(group_id, ''),
		       sender_id, COALESCE(transcription, ''), COALESCE(file_url, ''),
		       COALESCE(duration_ms, 0), created_at
		FROM messages
		WHERE group_id = $1
		ORDER BY created_at ASC
	`
	}

	rows, err := r.db.QueryContext(ctx, query, target.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrHistoryFetch, err)
	}
	defer rows.Close()

	var history []domain.RawMessageRow
	for rows.Next() {
		var row domain.RawMessageRow
		if err = rows.Scan(&row.ID, &row.ConversationID, &row.GroupID,
			&row.SenderID, &row.Transcription, &row.FileURL,
			&row.DurationMS, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrHistoryFetch, err)
		}
		history = append(history, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrHistoryFetch, err)
	}
	return history, nil
}

// InsertMessage persists a row and returns it with the server-assigned
// id and creation time filled in. Empty target ids are stored as NULL so
// the discriminating column stays meaningful.
func (r MessageRepository) InsertMessage(ctx context.Context, row domain.RawMessageRow) (domain.RawMessageRow, error) {
	insert := `
		INSERT INTO messages (conversation_id, group_id, sender_id, transcription, file_url, duration_ms)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, insert,
		row.ConversationID, row.GroupID, row.SenderID,
		row.Transcription, row.FileURL, row.DurationMS).
		Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return domain.RawMessageRow{}, fmt.Errorf("%w: %v", apperrors.ErrSend, err)
	}
	return row, nil
}
