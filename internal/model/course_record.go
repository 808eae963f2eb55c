package model

// CourseRecord is one row of a provisional grade history table.
// Instances are built either by the raw-text parser or by the CSV codec and
// are never mutated afterwards; edits re-enter through the CSV decode path.
type CourseRecord struct {
	SlNo               int     `json:"sl_no"`
	CourseCode         string  `json:"course_code"`
	CourseTitle        string  `json:"course_title"`
	CourseType         string  `json:"course_type"`
	Credits            float64 `json:"credits"`
	Grade              string  `json:"grade"`
	ExamMonth          string  `json:"exam_month"`
	ResultDeclaredOn   string  `json:"result_declared_on"`
	CourseOption       string  `json:"course_option"`
	CourseDistribution string  `json:"course_distribution"`
}

// RecordFieldNames lists the machine field names in canonical column order.
// Edited-table form keys ("row-3-course_title") and CSV columns both follow
// this order.
var RecordFieldNames = []string{
	"sl_no",
	"course_code",
	"course_title",
	"course_type",
	"credits",
	"grade",
	"exam_month",
	"result_declared_on",
	"course_option",
	"course_distribution",
}

// ExportRecordsRequest is the payload for the JSON export endpoint.
type ExportRecordsRequest struct {
	Records []CourseRecordInput `json:"records" binding:"required,min=1,dive"`
}

// CourseRecordInput is a single record submitted by an API client for export.
type CourseRecordInput struct {
	SlNo               int     `json:"sl_no" binding:"required,min=1"`
	CourseCode         string  `json:"course_code" binding:"required,max=20"`
	CourseTitle        string  `json:"course_title" binding:"max=200"`
	CourseType         string  `json:"course_type" binding:"max=20"`
	Credits            float64 `json:"credits" binding:"min=0"`
	Grade              string  `json:"grade" binding:"max=10"`
	ExamMonth          string  `json:"exam_month" binding:"max=40"`
	ResultDeclaredOn   string  `json:"result_declared_on" binding:"max=40"`
	CourseOption       string  `json:"course_option" binding:"max=40"`
	CourseDistribution string  `json:"course_distribution" binding:"max=40"`
}

// Record converts the validated input into a CourseRecord.
func (in CourseRecordInput) Record() CourseRecord {
	return CourseRecord{
		SlNo:               in.SlNo,
		CourseCode:         in.CourseCode,
		CourseTitle:        in.CourseTitle,
		CourseType:         in.CourseType,
		Credits:            in.Credits,
		Grade:              in.Grade,
		ExamMonth:          in.ExamMonth,
		ResultDeclaredOn:   in.ResultDeclaredOn,
		CourseOption:       in.CourseOption,
		CourseDistribution: in.CourseDistribution,
	}
}
