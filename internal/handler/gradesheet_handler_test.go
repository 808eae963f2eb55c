package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gradehist-backend/internal/config"
	"github.com/stemsi/gradehist-backend/internal/model"
	"github.com/stemsi/gradehist-backend/internal/service"
	"github.com/stemsi/gradehist-backend/internal/validator"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cfg := &config.Config{MaxUploadBytes: 1 << 20}
	h := NewGradesheetHandler(service.NewGradesheetService(cfg, zerolog.Nop()))

	r := gin.New()
	r.POST("/api/v1/gradesheets/parse", h.Parse)
	r.POST("/api/v1/gradesheets/export", h.Export)
	r.POST("/api/v1/gradesheets/export/json", h.ExportJSON)
	r.GET("/api/v1/gradesheets/template", h.Template)
	return r
}

type envelope struct {
	Data struct {
		Records []model.CourseRecord `json:"records"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestParseEndpointCSVUpload(t *testing.T) {
	r := newTestRouter()

	csvText := "Sl.No,Course Code,Course Title,Course Type,Credits,Grade,Exam Month,Result Declared On,Course Option,Course Distribution\n" +
		"1,CSE1001,Intro,REG,4.0,A,MAY2023,JUN2023,FULL,DIST1\n"
	body, contentType := multipartBody(t, "grades.csv", csvText)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/parse", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.Records) != 1 || resp.Data.Records[0].CourseCode != "CSE1001" {
		t.Errorf("unexpected records: %+v", resp.Data.Records)
	}
}

func TestParseEndpointUnsupportedTypeReturnsEmptyList(t *testing.T) {
	r := newTestRouter()

	body, contentType := multipartBody(t, "grades.docx", "whatever")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/parse", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Records == nil || len(resp.Data.Records) != 0 {
		t.Errorf("expected empty record list, got %+v", resp.Data.Records)
	}
}

func TestParseEndpointMissingFile(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/parse", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != "FILE_REQUIRED" {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestExportEndpointBuildsOrderedCSVAttachment(t *testing.T) {
	r := newTestRouter()

	form := url.Values{}
	form.Set("row-1-sl_no", "2")
	form.Set("row-1-course_code", "MAT1002")
	form.Set("row-0-sl_no", "1")
	form.Set("row-0-course_code", "CSE1001")
	form.Set("row-0-course_title", "Problem Solving")
	form.Set("unrelated-key", "ignored")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/export",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "edited_grades.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "1,CSE1001") || !strings.HasPrefix(lines[2], "2,MAT1002") {
		t.Errorf("rows out of order: %v", lines[1:])
	}
}

func TestExportJSONEndpointValidatesPayload(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/export/json",
		strings.NewReader(`{"records":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestExportJSONEndpointEncodesRecords(t *testing.T) {
	r := newTestRouter()

	payload := `{"records":[{"sl_no":1,"course_code":"CSE1001","course_title":"Intro","course_type":"REG",` +
		`"credits":4,"grade":"A","exam_month":"MAY2023","result_declared_on":"JUN2023",` +
		`"course_option":"FULL","course_distribution":"DIST1"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradesheets/export/json",
		strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "1,CSE1001,Intro,REG,4,A,MAY2023,JUN2023,FULL,DIST1") {
		t.Errorf("unexpected CSV body: %s", w.Body.String())
	}
}

func TestTemplateEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gradesheets/template", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "Sl.No,") {
		t.Errorf("unexpected template body: %q", w.Body.String())
	}
}
