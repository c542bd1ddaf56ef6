package controller

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	logger  logger.ILogger
}

func NewChatController(service service.IChatService, log logger.ILogger) IChatController {
	return &chatController{service: service, logger: log}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("", c.SendChat)
	h.Get("/:session_id/history", c.GetHistory)
	h.Delete("/:session_id/history", c.ClearHistory)
}

// SendChat answers one chat turn. The response body is the bare
// {content, intent, products} object the storefront client consumes, or an
// SSE stream when ?stream=true.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if ctx.QueryBool("stream") {
		return c.sendChatStream(ctx, &req)
	}

	res, err := c.service.SendChat(ctx.UserContext(), &req)
	if err != nil {
		c.logger.Error("ChatController", "Chat turn failed", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process chat")
	}

	return ctx.JSON(res)
}

func (c *chatController) sendChatStream(ctx *fiber.Ctx, req *dto.ChatRequest) error {
	stream, err := c.service.SendChatStream(ctx.UserContext(), req)
	if err != nil {
		c.logger.Error("ChatController", "Chat stream setup failed", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process chat")
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	meta, _ := json.Marshal(fiber.Map{
		"intent":   stream.Intent,
		"products": stream.Products,
	})

	// The writer runs after this handler returns, on fasthttp's goroutine.
	// Everything it needs is captured up front.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stream.Close()

		if _, err := w.WriteString("event: metadata\ndata: " + string(meta) + "\n\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}

		for {
			frag, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				c.logger.Error("ChatController", "Chat stream aborted", map[string]interface{}{
					"session_id": req.SessionID,
					"error":      err.Error(),
				})
				return
			}

			chunk, _ := json.Marshal(fiber.Map{"content": frag})
			if _, err := w.WriteString("data: " + string(chunk) + "\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}

		w.WriteString("data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionID, err := strconv.ParseInt(ctx.Params("session_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	history, err := c.service.GetHistory(ctx.UserContext(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", history))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	sessionID, err := strconv.ParseInt(ctx.Params("session_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := c.service.ClearHistory(ctx.UserContext(), sessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear chat history", nil))
}
