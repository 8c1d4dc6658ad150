package fingerprints

import (
	"errors"
	"fmt"
	"io"

	"github.com/Spritualkb/xingrin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for fingerprint library management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the fingerprint routes. Every route carries the
// variant as a path parameter; unknown variants get a 404 from the group
// middleware before any handler runs.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fingerprints/:variant", h.requireVariant)
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Put("/:id<int>", h.HandleUpdate)
	group.Delete("/:id<int>", h.HandleDelete)
	group.Post("/batch_create", h.HandleBatchCreate)
	group.Post("/import_file", h.HandleImportFile)
	group.Post("/bulk-delete", h.HandleBulkDelete)
	group.Post("/delete-all", h.HandleDeleteAll)
	group.Get("/export", h.HandleExport)
	group.Get("/version", h.HandleVersion)
}

func (h *Handler) requireVariant(c *fiber.Ctx) error {
	v, err := ParseVariant(c.Params("variant"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Locals("fp_variant", v)
	return c.Next()
}

func variantFromCtx(c *fiber.Ctx) Variant {
	return c.Locals("fp_variant").(Variant)
}

// HandleList returns one page of records, optionally filtered.
// Filter syntax: name=="exact", name="fuzzy", terms joined with &&.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	records, total, err := h.service.List(c.Context(), v, c.Query("filter"), page, pageSize)
	if err != nil {
		l.Error("Fingerprint list failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"results":   records,
	})
}

// HandleCreate validates and upserts a single record.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	var raw RawRecord
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid JSON body: %v", err),
		})
	}

	rec, err := h.service.Create(c.Context(), v, raw)
	if err != nil {
		l.Error("Fingerprint create failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// HandleUpdate overwrites one record by its numeric id.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid record id",
		})
	}

	var raw RawRecord
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid JSON body: %v", err),
		})
	}

	rec, err := h.service.Update(c.Context(), v, uint(id), raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "record not found",
			})
		}
		l.Error("Fingerprint update failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rec)
}

// HandleDelete removes one record by its numeric id.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid record id",
		})
	}

	if err := h.service.Delete(c.Context(), v, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "record not found",
			})
		}
		l.Error("Fingerprint delete failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleBatchCreate imports a JSON array of raw records.
func (h *Handler) HandleBatchCreate(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	var raws []RawRecord
	if err := c.BodyParser(&raws); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("body must be a JSON array of fingerprint records: %v", err),
		})
	}

	result, err := h.service.ImportBatch(c.Context(), v, raws)
	if err != nil {
		l.Error("Fingerprint batch create failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(statusForImportError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// HandleImportFile imports an uploaded fingerprint file (multipart field
// "file", JSON or YAML).
func (h *Handler) HandleImportFile(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing file upload",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to open upload: %v", err),
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read upload: %v", err),
		})
	}

	result, err := h.service.ImportFile(c.Context(), v, fileHeader.Filename, data)
	if err != nil {
		l.Error("Fingerprint file import failed",
			zap.String("variant", string(v)),
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		return c.Status(statusForImportError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// HandleBulkDelete removes records by unique key.
func (h *Handler) HandleBulkDelete(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	var body struct {
		Keys []string `json:"keys"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid JSON body: %v", err),
		})
	}

	if err := h.service.BulkDelete(c.Context(), v, body.Keys); err != nil {
		l.Error("Fingerprint bulk delete failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"deleted": len(body.Keys)})
}

// HandleDeleteAll removes every record of the variant.
func (h *Handler) HandleDeleteAll(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.DeleteAll(c.Context(), v); err != nil {
		l.Error("Fingerprint delete all failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleExport streams the full library in its canonical wire format as a
// file download.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	data, count, err := h.service.Export(c.Context(), v)
	if err != nil {
		l.Error("Fingerprint export failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Info("Fingerprint library exported",
		zap.String("variant", string(v)),
		zap.Int("records", count),
	)

	contentType := "application/json"
	if v.Encoding() == EncodingYAML {
		contentType = "application/x-yaml"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", v.ExportFilename()))
	return c.Send(data)
}

// HandleVersion returns the current content token, letting remote workers
// check staleness without downloading the library.
func (h *Handler) HandleVersion(c *fiber.Ctx) error {
	v := variantFromCtx(c)
	l := logger.WithRayID(h.service.logger, c)

	version, err := h.service.Version(c.Context(), v)
	if err != nil {
		l.Error("Fingerprint version failed", zap.String("variant", string(v)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"variant": v, "version": version})
}

func statusForImportError(err error) int {
	if IsStructural(err) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
