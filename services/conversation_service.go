//go:generate go run go.uber.org/mock/mockgen -source=conversation_service.go -destination=../mocks/mock_conversation_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"chat-sync/domain"
	apperrors "chat-sync/errors"
	"chat-sync/repositories"
)

type IConversationService interface {
	Resolve(ctx context.Context, selfID string, contact domain.Contact) (domain.Target, error)
}

// ConversationService resolves a contact into the target its messages
// flow through. For a group contact resolution is the identity function
// on the group id; for a direct contact the backing conversation row is
// looked up or created.
type ConversationService struct {
	conversations repositories.IConversationRepository
	log           *slog.Logger
}

func NewConversationService(conversations repositories.IConversationRepository, log *slog.Logger) ConversationService {
	return ConversationService{conversations: conversations, log: log}
}

func (s ConversationService) Resolve(ctx context.Context, selfID string, contact domain.Contact) (domain.Target, error) {
	if contact.Kind == domain.GroupContact {
		if contact.GroupID == "" {
			return domain.Target{}, apperrors.ErrInvalidTarget
		}
		return domain.GroupChatTarget(contact.GroupID), nil
	}

	if contact.PeerID == "" {
		return domain.Target{}, apperrors.ErrInvalidTarget
	}
	conversationID, err := s.conversations.ResolveOrCreate(ctx, selfID, contact.PeerID)
	if err != nil {
		return domain.Target{}, err
	}
	return domain.ConversationTarget(conversationID), nil
}
