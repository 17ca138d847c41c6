// Package event defines the domain events flowing between the storage
// layer and live subscribers.
package event

import "chat-sync/domain"

type DomainEvent interface {
	Target() domain.Target
}

// MessageInserted is emitted once a message row has been persisted.
// Live subscribers receive it as the server echo of a send.
type MessageInserted struct {
	Row domain.RawMessageRow
}

func (e MessageInserted) Target() domain.Target {
	return e.Row.Target()
}
