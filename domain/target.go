package domain

type TargetKind int

const (
	DirectTarget TargetKind = iota
	GroupTarget
)

// Target identifies the channel a subscription or a send is bound to:
// a conversation id for direct chats, a group id for groups.
type Target struct {
	Kind TargetKind
	ID   string
}

func ConversationTarget(conversationID string) Target {
	return Target{Kind: DirectTarget, ID: conversationID}
}

func GroupChatTarget(groupID string) Target {
	return Target{Kind: GroupTarget, ID: groupID}
}
