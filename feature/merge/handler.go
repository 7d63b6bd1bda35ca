package merge

import (
	"errors"

	"asset-diff/core/logger"
	mergetree "asset-diff/core/merge"
	"asset-diff/core/storage"
	"asset-diff/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

// Handler handles HTTP requests for merges.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/merge")
	group.Post("/", h.HandleMerge)
	group.Post("/objects", h.HandleMergeObjects)
	group.Get("/objects", h.HandleListObjects)
	group.Get("/history", h.HandleHistory)
	group.Get("/history/:id", h.HandleRun)
}

// HandleMerge diffs three inline documents.
// @Summary Merge Documents
// @Description Compute a three-way structural diff of inline documents. Each side is a JSON value or a YAML string; an omitted side is absent.
// @Tags merge
// @Accept json
// @Produce json
// @Param documents body Documents true "Base, side1 and side2 documents"
// @Param tree query bool false "Include the diff tree (default true)"
// @Success 200 {object} Result "Merge result"
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 413 {object} map[string]string "Document too large"
// @Failure 422 {object} map[string]string "Documents cannot be compared"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var docs Documents
	if err := c.BodyParser(&docs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	result, err := h.service.Merge(c.Context(), docs)
	if err != nil {
		return h.fail(c, l, "Merge failed", err)
	}
	return h.respond(c, result)
}

// HandleMergeObjects diffs three documents stored in the bucket.
// @Summary Merge Stored Documents
// @Description Compute a three-way structural diff of documents stored in the bucket. An empty key leaves that side absent. When output is set the result is written back to the bucket.
// @Tags merge
// @Accept json
// @Produce json
// @Param keys body ObjectKeys true "Object keys"
// @Param tree query bool false "Include the diff tree (default true)"
// @Success 200 {object} Result "Merge result"
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 404 {object} map[string]string "Object not found"
// @Failure 413 {object} map[string]string "Document too large"
// @Failure 422 {object} map[string]string "Documents cannot be compared"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge/objects [post]
func (h *Handler) HandleMergeObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var keys ObjectKeys
	if err := c.BodyParser(&keys); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	result, err := h.service.MergeObjects(c.Context(), keys)
	if err != nil {
		return h.fail(c, l, "Storage merge failed", err)
	}
	return h.respond(c, result)
}

// HandleListObjects lists documents available for merging.
// @Summary List Documents
// @Description List document keys in the bucket.
// @Tags merge
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string]interface{} "Document keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge/objects [get]
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	prefix := c.Query("prefix")

	keys, err := h.service.ListDocuments(c.Context(), prefix)
	if err != nil {
		return h.fail(c, l, "Listing documents failed", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{
		"prefix": prefix,
		"count":  len(keys),
		"keys":   keys,
	})
}

// HandleHistory returns recent merge runs.
// @Summary Merge History
// @Description List the most recent merge runs, newest first.
// @Tags merge
// @Produce json
// @Param limit query int false "Maximum number of runs (default 50)"
// @Success 200 {array} models.MergeRun "Merge runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := utils.ToInt(c.Query("limit"), defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	runs, err := h.service.History(c.Context(), limit)
	if err != nil {
		return h.fail(c, l, "Listing merge history failed", err)
	}
	return c.JSON(runs)
}

// HandleRun returns one merge run with its plan.
// @Summary Merge Run
// @Description Get a recorded merge run including its plan.
// @Tags merge
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Merge run"
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge/history/{id} [get]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.Run(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, l, "Loading merge run failed", err)
	}

	plan, err := run.DecodePlan()
	if err != nil {
		return h.fail(c, l, "Decoding merge plan failed", err)
	}
	return c.JSON(fiber.Map{
		"run":  run,
		"plan": plan,
	})
}

func (h *Handler) respond(c *fiber.Ctx, result *Result) error {
	if !c.QueryBool("tree", true) {
		trimmed := *result
		trimmed.Tree = nil
		return c.JSON(trimmed)
	}
	return c.JSON(result)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrDocumentTooLarge), errors.Is(err, storage.ErrObjectTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, mergetree.ErrMemberCount), errors.Is(err, mergetree.ErrNilChild):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrRunNotFound), errors.Is(err, storage.ErrObjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
