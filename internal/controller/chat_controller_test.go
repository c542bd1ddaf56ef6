package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/pkg/rag/pipeline"
)

type fakeChatService struct {
	result  *pipeline.Result
	err     error
	history []entity.ChatTurn

	gotRequest *dto.ChatRequest
	cleared    []int64
}

func (f *fakeChatService) SendChat(_ context.Context, req *dto.ChatRequest) (*pipeline.Result, error) {
	f.gotRequest = req
	return f.result, f.err
}

func (f *fakeChatService) SendChatStream(context.Context, *dto.ChatRequest) (*pipeline.Stream, error) {
	return nil, errors.New("not used in this test")
}

func (f *fakeChatService) GetHistory(context.Context, int64) ([]entity.ChatTurn, error) {
	return f.history, nil
}

func (f *fakeChatService) ClearHistory(_ context.Context, sessionID int64) error {
	f.cleared = append(f.cleared, sessionID)
	return nil
}

func newChatTestApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc, nopLogger{}).RegisterRoutes(app.Group("/api/v1"))
	return app
}

func TestSendChatBuffered(t *testing.T) {
	svc := &fakeChatService{
		result: &pipeline.Result{
			Content:  "Found a nice dress",
			Intent:   "PRODUCT_QUERY",
			Products: []dto.ProductSummary{{ID: "7", Name: "Dress"}},
		},
	}
	app := newChatTestApp(svc)

	payload := []byte(`{"session_id": 42, "query": "red dress"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The client consumes the bare result object, not the api envelope.
	var body struct {
		Content  string               `json:"content"`
		Intent   string               `json:"intent"`
		Products []dto.ProductSummary `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Found a nice dress", body.Content)
	assert.Equal(t, "PRODUCT_QUERY", body.Intent)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "7", body.Products[0].ID)

	require.NotNil(t, svc.gotRequest)
	assert.Equal(t, int64(42), svc.gotRequest.SessionID)
}

func TestSendChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing session id", body: `{"query": "red dress"}`},
		{name: "empty query", body: `{"session_id": 42, "query": ""}`},
		{name: "malformed json", body: `{"session_id": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeChatService{}
			app := newChatTestApp(svc)

			req := httptest.NewRequest(fiber.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(tt.body)))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Nil(t, svc.gotRequest, "service must not be called on invalid input")
		})
	}
}

func TestSendChatPipelineFailure(t *testing.T) {
	svc := &fakeChatService{err: errors.New("qdrant down")}
	app := newChatTestApp(svc)

	payload := []byte(`{"session_id": 42, "query": "red dress"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	// Internals never leak to the client.
	assert.NotContains(t, body["message"], "qdrant")
}

func TestGetHistory(t *testing.T) {
	svc := &fakeChatService{history: []entity.ChatTurn{
		{Role: "user", Content: "hi"},
		{Role: "chatbot", Content: "hello"},
	}}
	app := newChatTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/chat/42/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Data   []entity.ChatTurn `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 2)
}

func TestClearHistory(t *testing.T) {
	svc := &fakeChatService{}
	app := newChatTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/v1/chat/42/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []int64{42}, svc.cleared)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/v1/chat/abc/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
