//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself.
// Supervision, restarts and panic recovery belong to the Supervisor.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Directory is the auth/contacts collaborator. Session retrieval and
// contact CRUD live outside this module; the engine only consumes them.
type Directory interface {
	CurrentUserID() string
	ContactsFor(ctx context.Context, userID string) ([]domain.Contact, error)
}

// HistorySource returns the full ordered message history for a target.
type HistorySource interface {
	FetchHistory(ctx context.Context, target domain.Target) ([]domain.RawMessageRow, error)
}

// LiveFeed delivers newly inserted message rows for a specific target.
// The returned Subscription is owned by exactly one consumer at a time.
type LiveFeed interface {
	SubscribeInserts(target domain.Target, onInsert func(domain.RawMessageRow)) (Subscription, error)
}

type Subscription interface {
	Cancel()
}
