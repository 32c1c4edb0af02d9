package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// ExportHandler exportes CSV y recibo PDF.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler construye el handler de exportes.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// OrdersCSV descarga las órdenes visibles en CSV.
func (h *ExportHandler) OrdersCSV(c *fiber.Ctx) error {
	data, err := h.uc.OrdersCSV(GetUser(c))
	if err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "orders.csv", data)
}

// CustomersCSV descarga los clientes visibles en CSV.
func (h *ExportHandler) CustomersCSV(c *fiber.Ctx) error {
	data, err := h.uc.CustomersCSV(GetUser(c))
	if err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "customers.csv", data)
}

// ExpensesCSV descarga los gastos en CSV.
func (h *ExportHandler) ExpensesCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExpensesCSV()
	if err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "expenses.csv", data)
}

// ReportCSV descarga el resumen financiero del rango pedido en CSV.
func (h *ExportHandler) ReportCSV(c *fiber.Ctx) error {
	in, ok := parseRangeQuery(c)
	if !ok {
		return nil
	}
	data, err := h.uc.PeriodReportCSV(GetUser(c), in, time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "report.csv", data)
}

// OrderReceiptPDF descarga el recibo imprimible de una orden.
func (h *ExportHandler) OrderReceiptPDF(c *fiber.Ctx) error {
	data, err := h.uc.OrderReceiptPDF(GetUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
