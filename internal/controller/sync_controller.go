package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"
)

type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	TriggerSync(ctx *fiber.Ctx) error
	BulkSync(ctx *fiber.Ctx) error
}

type syncController struct {
	queue  service.ISyncQueueService
	logger logger.ILogger
}

func NewSyncController(queue service.ISyncQueueService, log logger.ILogger) ISyncController {
	return &syncController{queue: queue, logger: log}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	r.Post("/sync/product", c.TriggerSync)
	r.Post("/sync-products", c.BulkSync)
}

// TriggerSync queues a single-product or full-catalog sync job and returns
// immediately; the worker does the indexing.
func (c *syncController) TriggerSync(ctx *fiber.Ctx) error {
	var req dto.ProductSyncRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.Action != dto.SyncActionUpdateAll && req.ProductID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "product_id is required for update and delete actions")
	}

	var productIds []int64
	if req.ProductID != nil {
		productIds = []int64{*req.ProductID}
	}

	jobID, err := c.queue.Enqueue(ctx.UserContext(), req.Action, productIds)
	if err != nil {
		c.logger.Error("SyncController", "Failed to queue sync job", map[string]interface{}{
			"action": req.Action,
			"error":  err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to queue sync job")
	}

	c.logger.Info("SyncController", "Sync job queued", map[string]interface{}{
		"job_id": jobID,
		"action": req.Action,
	})

	return ctx.JSON(dto.SyncResponse{
		Status:  "success",
		Message: fmt.Sprintf("Sync job %s queued with action %s", jobID, req.Action),
	})
}

// BulkSync queues a targeted re-index over the product ids in the payload.
func (c *syncController) BulkSync(ctx *fiber.Ctx) error {
	var req dto.BulkSyncRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	productIds := make([]int64, 0, len(req.Products))
	for _, product := range req.Products {
		productIds = append(productIds, product.ID)
	}

	jobID, err := c.queue.Enqueue(ctx.UserContext(), dto.SyncActionUpdate, productIds)
	if err != nil {
		c.logger.Error("SyncController", "Failed to queue bulk sync job", map[string]interface{}{
			"count": len(productIds),
			"error": err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to queue sync job")
	}

	c.logger.Info("SyncController", "Bulk sync job queued", map[string]interface{}{
		"job_id": jobID,
		"count":  len(productIds),
	})

	return ctx.JSON(dto.SyncResponse{
		Status:  "success",
		Message: fmt.Sprintf("Queued sync for %d products", len(productIds)),
	})
}
