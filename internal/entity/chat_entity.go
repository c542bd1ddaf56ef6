package entity

// ChatTurn is one message in a session's conversation log.
// Turns are immutable once appended; ordering is insertion order.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
