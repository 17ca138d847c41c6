//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"chat-sync/domain"
	apperrors "chat-sync/errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type IConversationRepository interface {
	ResolveOrCreate(ctx context.Context, userA, userB string) (string, error)
	Get(ctx context.Context, conversationID string) (domain.Conversation, error)
}

type ConversationRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewConversationRepository(db *sql.DB, log *slog.Logger) ConversationRepository {
	return ConversationRepository{db: db, log: log}
}

// ResolveOrCreate returns the conversation id for an unordered pair of
// users, creating the row on first contact. The pair is canonicalized
// (lower id first) and the table carries a UNIQUE constraint on
// (participant_low, participant_high), so two sides resolving the same
// pair concurrently converge on one row: a unique violation on insert
// means the other side just created it, and we re-fetch instead of
// failing.
func (r ConversationRepository) ResolveOrCreate(ctx context.Context, userA, userB string) (string, error) {
	if userA == userB {
		return "", apperrors.ErrInvalidTarget
	}
	low, high := domain.OrderedPair(userA, userB)

	id, err := r.lookup(ctx, low, high)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		return "", fmt.Errorf("%w: %v", apperrors.ErrResolutionFailed, err)
	}

	insert := `
		INSERT INTO conversations (participant_low, participant_high)
		VALUES ($1, $2)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, insert, low, high).Scan(&id)
	if err == nil {
		r.log.Info("Conversation created", "low", low, "high", high, "id", id)
		return id, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		// Lost the race against the peer's insert; their row wins.
		return r.lookup(ctx, low, high)
	}
	return "", fmt.Errorf("%w: %v", apperrors.ErrResolutionFailed, err)
}

func (r ConversationRepository) lookup(ctx context.Context, low, high string) (string, error) {
	query := `
		SELECT id FROM conversations
		WHERE participant_low = $1 AND participant_high = $2
	`
	var id string
	err := r.db.QueryRowContext(ctx, query, low, high).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrConversationNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r ConversationRepository) Get(ctx context.Context, conversationID string) (domain.Conversation, error) {
	query := `
		SELECT id, participant_low, participant_high, created_at
		FROM conversations
		WHERE id = $1
	`
	var convo domain.Conversation
	err := r.db.QueryRowContext(ctx, query, conversationID).
		Scan(&convo.ID, &convo.ParticipantLow, &convo.ParticipantHigh, &convo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Conversation{}, apperrors.ErrConversationNotFound
	}
	if err != nil {
		return domain.Conversation{}, err
	}
	return convo, nil
}
