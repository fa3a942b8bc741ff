package agents

import "context"

// Turn is one prior exchange in a conversation
type Turn struct {
	Role    string // RoleUser or RoleModel
	Content string
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Assistant produces a natural-language reply to a user message
type Assistant interface {
	Reply(ctx context.Context, history []Turn, message string) (string, error)
}
