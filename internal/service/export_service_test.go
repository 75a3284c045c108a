package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

func TestExportService_SubjectGrades(t *testing.T) {
	repo, m := newMockRepository()
	ctx := context.Background()
	year := "2024-2025"

	_ = m.subject.Create(ctx, &model.Subject{Code: "CS101", Name: "Intro", CreditHours: 3, Specialization: "CS", Level: "One", Semester: "One"})
	_ = m.student.Create(ctx, &model.Student{Code: "2002", Name: "Mona", AcademicYear: &year})
	_ = m.student.Create(ctx, &model.Student{Code: "2001", Name: "Omar", AcademicYear: &year})
	for _, sid := range []uint{1, 2} {
		_ = m.grade.Create(ctx, &model.Grade{
			StudentID: sid, SubjectID: 1,
			MidtermGrade: decimal.NewFromInt(20), PracticalGrade: decimal.NewFromInt(10),
			YearsWorkGrade: decimal.NewFromInt(15), FinalGrade: decimal.NewFromInt(35),
			TotalGrade: decimal.NewFromInt(80), TotalGradeChar: "A", GradeStatus: "pass", AcademicYear: year,
		})
	}

	svc := NewExportService(repo, zap.NewNop())
	buf, filename, err := svc.ExportSubjectGrades(ctx, 1)
	if err != nil {
		t.Fatalf("ExportSubjectGrades 应成功: %v", err)
	}
	if filename != "成绩单_CS101.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("成绩单")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望 标题+表头+2 行数据，实际 %d 行", len(rows))
	}
	if rows[1][0] != "学号" {
		t.Errorf("表头不符: %v", rows[1])
	}
	if rows[2][0] != "2001" || rows[3][0] != "2002" {
		t.Errorf("数据应按学号排序: %v / %v", rows[2], rows[3])
	}
	if rows[2][6] != "80" || rows[2][7] != "A" {
		t.Errorf("总分/等级列不符: %v", rows[2])
	}

	if _, _, err := svc.ExportSubjectGrades(ctx, 99); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

func TestExportService_Students(t *testing.T) {
	repo, m := newMockRepository()
	ctx := context.Background()
	y1, y2 := "2024-2025", "2025-2026"

	_ = m.student.Create(ctx, &model.Student{Code: "2001", Name: "Omar", Level: "One", Specialization: "CS", AcademicYear: &y1})
	_ = m.student.Create(ctx, &model.Student{Code: "3001", Name: "Laila", Level: "One", Specialization: "IT", AcademicYear: &y2})

	svc := NewExportService(repo, zap.NewNop())
	buf, filename, err := svc.ExportStudents(ctx, &dto.StudentListRequest{AcademicYear: y2})
	if err != nil {
		t.Fatalf("ExportStudents 应成功: %v", err)
	}
	if filename != "学生名册_2025-2026.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("学生名册")
	if len(rows) != 3 || rows[2][0] != "3001" {
		t.Errorf("按学年过滤后应只有 3001: %v", rows)
	}
}
