package llm

// MessageRole identifies who a chat message is attributed to.
type MessageRole string

const (
	// RoleSystem carries behavioral instructions for the model
	RoleSystem MessageRole = "system"
	// RoleUser carries the request content itself
	RoleUser MessageRole = "user"
)

// Message is a single entry in a chat-style request.
type Message struct {
	Role    MessageRole
	Content string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
