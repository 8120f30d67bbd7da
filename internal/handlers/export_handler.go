package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/export"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	source export.Source
}

func NewExportHandler(source export.Source) *ExportHandler {
	return &ExportHandler{source: source}
}

// Download sends every collection as an attachment, JSON unless ?format=xlsx.
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	doc := export.Build(h.source)

	var (
		body        []byte
		err         error
		filename    string
		contentType string
	)
	switch format := c.Query("format", "json"); format {
	case "json":
		body, err = export.JSON(doc)
		filename, contentType = export.JSONFilename, fiber.MIMEApplicationJSON
	case "xlsx":
		body, err = export.XLSX(doc)
		filename, contentType = export.XLSXFilename, xlsxContentType
	default:
		return badRequest(c, "format must be json or xlsx")
	}
	if err != nil {
		slog.Error("export failed", "action", "export", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build export",
		})
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
