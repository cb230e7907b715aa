package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/internal/service"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
	"github.com/sit-academy/enrollment-api/pkg/export"
	"github.com/sit-academy/enrollment-api/pkg/response"
)

// BatchHandler serves the admin batch surface: batch listing, per-batch
// analysis and roster exports.
type BatchHandler struct {
	catalog  *service.CatalogService
	analysis *service.AnalysisService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewBatchHandler creates a new handler.
func NewBatchHandler(catalog *service.CatalogService, analysis *service.AnalysisService) *BatchHandler {
	return &BatchHandler{
		catalog:  catalog,
		analysis: analysis,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// List godoc
// @Summary List batches
// @Description List all batches with course context, student counts and schedule status
// @Tags Batches
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /batches [get]
func (h *BatchHandler) List(c *gin.Context) {
	summaries, err := h.catalog.BatchSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// Analysis godoc
// @Summary Batch analysis
// @Description Aggregate statistics and revenue for one batch's roster
// @Tags Batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /batches/{id}/analysis [get]
func (h *BatchHandler) Analysis(c *gin.Context) {
	analysis, cached, err := h.analysis.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis, nil, map[string]interface{}{"cached": cached})
}

// Students godoc
// @Summary Batch roster
// @Description List enrolled students for one batch
// @Tags Batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /batches/{id}/students [get]
func (h *BatchHandler) Students(c *gin.Context) {
	students, err := h.analysis.Students(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// ExportStudents godoc
// @Summary Export batch roster
// @Description Download the batch roster as CSV or PDF
// @Tags Batches
// @Produce octet-stream
// @Param id path string true "Batch ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /batches/{id}/students/export [get]
func (h *BatchHandler) ExportStudents(c *gin.Context) {
	batchID := c.Param("id")
	students, err := h.analysis.Students(c.Request.Context(), batchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := rosterDataset(students)
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=batch-%s-roster.csv", batchID))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, fmt.Sprintf("Batch %s Roster", batchID))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=batch-%s-roster.pdf", batchID))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

func rosterDataset(students []models.BatchStudent) export.Dataset {
	headers := []string{"Enrollment ID", "Name", "Email", "Status", "Progress", "Attendance", "Fee Paid", "Payment Done"}
	rows := make([]map[string]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, map[string]string{
			"Enrollment ID": s.EnrollmentID,
			"Name":          s.StudentName,
			"Email":         s.StudentEmail,
			"Status":        string(s.Status),
			"Progress":      strconv.FormatFloat(s.Progress, 'f', 1, 64),
			"Attendance":    strconv.FormatFloat(s.Attendance, 'f', 1, 64),
			"Fee Paid":      strconv.FormatFloat(s.FeePaid, 'f', 2, 64),
			"Payment Done":  strconv.FormatBool(s.PaymentDone),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
