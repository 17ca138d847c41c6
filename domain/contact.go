// Package domain contains core concepts of the messaging system.
// No runtime, network, or UI logic should be added here.
package domain

type ContactKind int

const (
	DirectContact ContactKind = iota
	GroupContact
)

// Contact is an entry of the user's directory.
// Exactly one of PeerID / GroupID is set, depending on Kind.
type Contact struct {
	Kind        ContactKind
	PeerID      string
	GroupID     string
	DisplayName string
	Initials    string
	ColorTag    string
	Online      bool
}

func NewDirectContact(peerID, displayName string) Contact {
	return Contact{Kind: DirectContact, PeerID: peerID, DisplayName: displayName}
}

func NewGroupContact(groupID, displayName string) Contact {
	return Contact{Kind: GroupContact, GroupID: groupID, DisplayName: displayName}
}
