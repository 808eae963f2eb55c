package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gradehist-backend/internal/model"
	"github.com/stemsi/gradehist-backend/internal/response"
	"github.com/stemsi/gradehist-backend/internal/service"
	"github.com/stemsi/gradehist-backend/internal/validator"
)

// exportFilename matches what the original web UI offered for download.
const exportFilename = "edited_grades.csv"

// editedFieldPattern matches edited-table form keys like "row-3-course_title".
var editedFieldPattern = regexp.MustCompile(`^row-(\d+)-([a-z_]+)$`)

// GradesheetHandler handles grade history parse and export endpoints.
type GradesheetHandler struct {
	gradesheetService *service.GradesheetService
}

// NewGradesheetHandler creates a new GradesheetHandler.
func NewGradesheetHandler(gradesheetService *service.GradesheetService) *GradesheetHandler {
	return &GradesheetHandler{gradesheetService: gradesheetService}
}

// Parse godoc
// POST /api/v1/gradesheets/parse
// Accepts a multipart "file" (PDF or previously exported CSV) and returns the
// parsed records. Unsupported file types yield an empty record list.
func (h *GradesheetHandler) Parse(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	records, err := h.gradesheetService.ParseUpload(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	if records == nil {
		records = []model.CourseRecord{}
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// Export godoc
// POST /api/v1/gradesheets/export
// Accepts urlencoded form fields named "row-<index>-<field>", reassembles the
// rows in index order and returns them as a CSV attachment. Unknown keys are
// ignored; fully blank rows are dropped.
func (h *GradesheetHandler) Export(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	rows := make(map[int]map[string]string)
	for key, values := range c.Request.PostForm {
		m := editedFieldPattern.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		row, ok := rows[idx]
		if !ok {
			row = make(map[string]string)
			rows[idx] = row
		}
		row[m[2]] = values[0]
	}

	data, err := h.gradesheetService.EncodeEditedRows(rows)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	sendCSV(c, exportFilename, data)
}

// ExportJSON godoc
// POST /api/v1/gradesheets/export/json
// Typed counterpart of Export for API clients: a validated record list in,
// the canonical CSV attachment out.
func (h *GradesheetHandler) ExportJSON(c *gin.Context) {
	var req model.ExportRecordsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records := make([]model.CourseRecord, 0, len(req.Records))
	for _, in := range req.Records {
		records = append(records, in.Record())
	}

	data, err := h.gradesheetService.EncodeRecords(records)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	sendCSV(c, exportFilename, data)
}

// Template godoc
// GET /api/v1/gradesheets/template
// Returns the header-only canonical CSV.
func (h *GradesheetHandler) Template(c *gin.Context) {
	sendCSV(c, "grade_history_template.csv", h.gradesheetService.TemplateCSV())
}

func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
