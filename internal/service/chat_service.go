// FILE: internal/service/chat_service.go
package service

import (
	"context"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/repository/contract"
	"fashion-chatbot-be/pkg/rag/pipeline"
)

// IChatService is the conversational surface of the assistant.
type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*pipeline.Result, error)
	SendChatStream(ctx context.Context, req *dto.ChatRequest) (*pipeline.Stream, error)
	GetHistory(ctx context.Context, sessionID int64) ([]entity.ChatTurn, error)
	ClearHistory(ctx context.Context, sessionID int64) error
}

type chatService struct {
	pipeline      *pipeline.Pipeline
	conversations contract.ConversationRepository
}

func NewChatService(p *pipeline.Pipeline, conversations contract.ConversationRepository) IChatService {
	return &chatService{
		pipeline:      p,
		conversations: conversations,
	}
}

func (c *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*pipeline.Result, error) {
	return c.pipeline.Ask(ctx, req.SessionID, req.Query)
}

func (c *chatService) SendChatStream(ctx context.Context, req *dto.ChatRequest) (*pipeline.Stream, error) {
	return c.pipeline.AskStream(ctx, req.SessionID, req.Query)
}

func (c *chatService) GetHistory(ctx context.Context, sessionID int64) ([]entity.ChatTurn, error) {
	return c.conversations.RecentHistory(ctx, sessionID, constant.ChatHistoryLimit)
}

func (c *chatService) ClearHistory(ctx context.Context, sessionID int64) error {
	return c.conversations.ClearHistory(ctx, sessionID)
}
