package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// conversationTTL keeps session logs for 24h from the last append.
const conversationTTL = 24 * time.Hour

// conversationRepository stores each session as a Redis list of JSON
// turns under "chat:<session_id>".
type conversationRepository struct {
	rdb *redis.Client
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(rdb *redis.Client) contract.ConversationRepository {
	return &conversationRepository{rdb: rdb}
}

func sessionKey(sessionID int64) string {
	return fmt.Sprintf("chat:%d", sessionID)
}

func (r *conversationRepository) Append(ctx context.Context, sessionID int64, role, content string) error {
	payload, err := json.Marshal(entity.ChatTurn{Role: role, Content: content})
	if err != nil {
		return fmt.Errorf("marshal chat turn: %w", err)
	}

	key := sessionKey(sessionID)
	if err := r.rdb.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("append to %s: %w", key, err)
	}

	// Refresh retention on every append; expiry failure is not fatal.
	r.rdb.Expire(ctx, key, conversationTTL)
	return nil
}

func (r *conversationRepository) RecentHistory(ctx context.Context, sessionID int64, limit int) ([]entity.ChatTurn, error) {
	key := sessionKey(sessionID)

	raw, err := r.rdb.LRange(ctx, key, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history from %s: %w", key, err)
	}

	turns := make([]entity.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn entity.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			continue // skip corrupt entries rather than failing the request
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *conversationRepository) ClearHistory(ctx context.Context, sessionID int64) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
