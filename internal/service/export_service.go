package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSubjectGrades 科目成绩单：每行一名学生，按学号排序
	ExportSubjectGrades(ctx context.Context, subjectID uint) (*bytes.Buffer, string, error)
	// ExportStudents 学生名册，沿用学生列表的过滤条件，不分页
	ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var gradeSheetHeader = []interface{}{
	"学号", "姓名", "期中", "实践", "平时", "期末", "总分", "等级", "状态", "学年",
}

var rosterHeader = []interface{}{
	"学号", "姓名", "邮箱", "电话", "年级", "专业", "学年", "GPA",
}

// ═══════════════════════════════════════════════════════════
// ExportSubjectGrades
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportSubjectGrades(ctx context.Context, subjectID uint) (*bytes.Buffer, string, error) {
	subject, err := s.repo.Subject.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.Uint("subject_id", subjectID), zap.Error(err))
		return nil, "", err
	}

	grades, err := s.repo.Grade.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Error("查询科目成绩失败", zap.Uint("subject_id", subjectID), zap.Error(err))
		return nil, "", err
	}

	rows := make([][]interface{}, 0, len(grades))
	for _, g := range grades {
		code, name := "", ""
		if g.Student != nil {
			code, name = g.Student.Code, g.Student.Name
		}
		rows = append(rows, []interface{}{
			code,
			name,
			g.MidtermGrade.InexactFloat64(),
			g.PracticalGrade.InexactFloat64(),
			g.YearsWorkGrade.InexactFloat64(),
			g.FinalGrade.InexactFloat64(),
			g.TotalGrade.InexactFloat64(),
			g.TotalGradeChar,
			g.GradeStatus,
			g.AcademicYear,
		})
	}

	title := fmt.Sprintf("%s %s 成绩单", subject.Code, subject.Name)
	buf, err := s.writeSheet("成绩单", title, gradeSheetHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("成绩单_%s.xlsx", subject.Code), nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudents
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error) {
	students, _, err := s.repo.Student.List(ctx, studentFilter(req), 0, 0)
	if err != nil {
		s.logger.Error("查询学生名册失败", zap.Error(err))
		return nil, "", err
	}

	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		year := ""
		if st.AcademicYear != nil {
			year = *st.AcademicYear
		}
		rows = append(rows, []interface{}{
			st.Code,
			st.Name,
			st.Email,
			st.PhoneNumber,
			st.Level,
			st.Specialization,
			year,
			st.GPA.InexactFloat64(),
		})
	}

	buf, err := s.writeSheet("学生名册", "学生名册", rosterHeader, rows)
	if err != nil {
		return nil, "", err
	}
	filename := "学生名册.xlsx"
	if req.AcademicYear != "" {
		filename = fmt.Sprintf("学生名册_%s.xlsx", req.AcademicYear)
	}
	return buf, filename, nil
}

// writeSheet 生成单 Sheet 工作簿：第 1 行标题（合并），第 2 行表头，之后为数据
func (s *exportService) writeSheet(sheetName, title string, header []interface{}, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol := colName(len(header) - 1)
	_ = f.SetCellValue(sheetName, "A1", title)
	_ = f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	_ = f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	_ = f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)
	_ = f.SetColWidth(sheetName, "A", lastCol, 16)

	for i := range rows {
		if err := f.SetSheetRow(sheetName, cell("A", i+3), &rows[i]); err != nil {
			s.logger.Error("写入数据行失败", zap.Int("row", i+3), zap.Error(err))
			return nil, ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
