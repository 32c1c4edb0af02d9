package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// ReportHandler tablero de métricas y estado del guardado diferido.
type ReportHandler struct {
	uc     *usecase.AnalyticsUseCase
	syncer *store.Syncer
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.AnalyticsUseCase, syncer *store.Syncer) *ReportHandler {
	return &ReportHandler{uc: uc, syncer: syncer}
}

// parseRangeQuery lee el rango pedido desde query params (range, from, to en
// RFC 3339). Devuelve false si ya escribió la respuesta 400.
func parseRangeQuery(c *fiber.Ctx) (dto.DashboardRequest, bool) {
	in := dto.DashboardRequest{Range: c.Query("range", "today")}
	if v := c.Query("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha RFC3339 inválida"})
			return in, false
		}
		in.From = &ts
	}
	if v := c.Query("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha RFC3339 inválida"})
			return in, false
		}
		in.To = &ts
	}
	return in, true
}

// Dashboard devuelve las métricas del rango pedido.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	in, ok := parseRangeQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Dashboard(GetUser(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SyncStatus expone el estado del motor de guardado: si hay un guardado en
// vuelo, cuándo fue el último éxito y el último error.
func (h *ReportHandler) SyncStatus(c *fiber.Ctx) error {
	resp := dto.SyncStatusResponse{
		Saving:    h.syncer.Saving(),
		LastSaved: h.syncer.LastSaved(),
	}
	if err := h.syncer.LastError(); err != nil {
		resp.LastError = err.Error()
	}
	return c.JSON(resp)
}

// Flush fuerza un guardado inmediato (lo usa el cliente antes de cerrar).
func (h *ReportHandler) Flush(c *fiber.Ctx) error {
	if err := h.syncer.Flush(c.Context()); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
