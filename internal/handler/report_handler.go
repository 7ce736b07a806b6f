package handler

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"go-pos-ledger/internal/export"
	"go-pos-ledger/internal/service"

	"github.com/araddon/dateparse"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
	loc     *time.Location
}

func NewReportHandler(s service.ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{service: s, loc: loc}
}

// dateRange reads start/end from the query, falling back to the default range
// for whichever is missing.
func (h *ReportHandler) dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, end := h.service.DefaultRange()
	if v := c.Query("start"); v != "" {
		t, err := dateparse.ParseIn(v, h.loc)
		if err != nil {
			return start, end, fmt.Errorf("%w: start date %q", service.ErrInvalidInput, v)
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := dateparse.ParseIn(v, h.loc)
		if err != nil {
			return start, end, fmt.Errorf("%w: end date %q", service.ErrInvalidInput, v)
		}
		end = t
	}
	return start, end, nil
}

// GetSales summarizes the ledger. Empty results come back as no_data so the
// screen can tell "nothing happened" apart from zero totals.
func (h *ReportHandler) GetSales(c *fiber.Ctx) error {
	start, end, err := h.dateRange(c)
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.service.Summarize(start, end)
	if errors.Is(err, service.ErrNoSalesData) || errors.Is(err, service.ErrNoSalesInRange) {
		_, code := errorStatus(err)
		return c.JSON(fiber.Map{"no_data": true, "code": code, "message": err.Error()})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"no_data": false, "data": report})
}

func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	start, end, err := h.dateRange(c)
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.service.Summarize(start, end)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteSalesCSV(&buf, report.Records, h.loc); err != nil {
		return respondError(c, err)
	}
	c.Attachment(export.FileName(report.Start, report.End))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
