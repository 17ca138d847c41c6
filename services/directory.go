package services

import (
	"context"

	"chat-sync/domain"
)

// StaticDirectory is a fixed in-memory Directory, enough for wiring the
// engine when the real auth/contacts collaborator lives elsewhere.
type StaticDirectory struct {
	SelfID   string
	Contacts []domain.Contact
}

func (d StaticDirectory) CurrentUserID() string {
	return d.SelfID
}

func (d StaticDirectory) ContactsFor(_ context.Context, _ string) ([]domain.Contact, error) {
	return append([]domain.Contact(nil), d.Contacts...), nil
}
