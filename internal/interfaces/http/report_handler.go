package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/report"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler resumen diario, exportación Excel y PDF de cierre.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DailySummary godoc
// @Summary      Resumen del día de negocio
// @Description  Staff solo puede consultar el día actual.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día de negocio YYYY-MM-DD (default hoy)"
// @Success      200   {object}  dto.DailySummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) DailySummary(c *fiber.Ctx) error {
	out, err := h.uc.DailySummary(c.UserContext(), actorOf(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyPDF godoc
// @Summary      Reporte de cierre diario en PDF (admin)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  query  string  false  "Día de negocio YYYY-MM-DD (default hoy)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reports/daily.pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	date := c.Query("date")
	b, err := h.uc.DailyReportPDF(c.UserContext(), actorOf(c), date)
	if err != nil {
		return respondError(c, err)
	}
	if date == "" {
		date = "today"
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="daily-report-%s.pdf"`, date))
	return c.Send(b)
}

// ExportHistory godoc
// @Summary      Exportar historial de atenciones a Excel (admin)
// @Tags         transactions
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Día inicial YYYY-MM-DD"
// @Param        to    query  string  false  "Día final YYYY-MM-DD"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/transactions/export [get]
func (h *ReportHandler) ExportHistory(c *fiber.Ctx) error {
	b, err := h.uc.ExportHistory(c.UserContext(), actorOf(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.xlsx"`)
	return c.Send(b)
}
