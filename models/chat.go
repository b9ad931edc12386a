package models

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatAttachment references a file from the snapshot inside a message
type ChatAttachment struct {
	Path    string `json:"path"`
	Snippet string `json:"snippet,omitempty"`
}

type ChatMessage struct {
	ID          string           `json:"id"`
	Role        ChatRole         `json:"role"`
	Content     string           `json:"content"`
	Timestamp   int64            `json:"timestamp"`
	Attachments []ChatAttachment `json:"attachments,omitempty"`
}

// ChatState is the chat panel state as persisted by the UI
type ChatState struct {
	Messages  []ChatMessage `json:"messages"`
	IsPending bool          `json:"isPending"`
	Error     string        `json:"error,omitempty"`
}

// NavigationState tracks what the file viewer is showing
type NavigationState struct {
	ActivePath   string   `json:"activePath"`
	OpenTabs     []string `json:"openTabs"`
	ExpandedDirs []string `json:"expandedDirs,omitempty"`
	SelectedFile string   `json:"selectedFile,omitempty"`
}
