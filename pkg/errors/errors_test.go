package errors

import (
	"fmt"
	"testing"
)

func TestValidationError_WrappedIsDetected(t *testing.T) {
	base := NewValidationError("参数校验失败", "email", "该邮箱已被使用")
	wrapped := fmt.Errorf("创建学生: %w", base)

	ve, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("包装后的 ValidationError 应可被识别")
	}
	if got := ve.Fields["email"]; len(got) != 1 || got[0] != "该邮箱已被使用" {
		t.Errorf("字段错误不符: %v", got)
	}
	if ve.Error() != "参数校验失败: email" {
		t.Errorf("Error() 不符: %s", ve.Error())
	}
}

func TestFieldErrors_Add(t *testing.T) {
	f := FieldErrors{}
	f.Add("code", "a")
	f.Add("code", "b")
	if len(f["code"]) != 2 {
		t.Errorf("期望 2 条，实际 %d", len(f["code"]))
	}
}

func TestConstraintError(t *testing.T) {
	ce := &ConstraintError{Field: "midtermGrade", Message: "期中成绩超出该科目上限", Detail: "期中成绩不能超过 25"}
	if _, ok := AsConstraint(fmt.Errorf("x: %w", ce)); !ok {
		t.Fatal("应识别 ConstraintError")
	}
	if ce.Fields()["midtermGrade"][0] != "期中成绩不能超过 25" {
		t.Errorf("Fields 不符: %v", ce.Fields())
	}

	noField := &ConstraintError{Message: "分项之和必须等于总分"}
	if noField.Fields() != nil {
		t.Error("无字段约束应返回 nil")
	}
	if _, ok := AsValidation(noField); ok {
		t.Error("ConstraintError 不应被识别为 ValidationError")
	}
}
