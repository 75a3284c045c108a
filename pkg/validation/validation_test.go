package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Year   string   `json:"academic_year" binding:"required,academic_year"`
	Score  *float64 `json:"midtermGrade"  binding:"required,min=0,max=100"`
	Status string   `json:"gradeStatus"   binding:"required,oneof=pass i i* ff* others"`
}

func TestSetup_Idempotent(t *testing.T) {
	if err := Setup(); err != nil {
		t.Fatalf("Setup 应成功: %v", err)
	}
	if err := Setup(); err != nil {
		t.Fatalf("重复 Setup 应成功: %v", err)
	}
}

func TestTranslate_FieldKeyedByJSONName(t *testing.T) {
	if err := Setup(); err != nil {
		t.Fatal(err)
	}

	over := 130.0
	err := binding.Validator.ValidateStruct(&sample{Year: "2024/2025", Score: &over, Status: "bad"})
	if err == nil {
		t.Fatal("期望校验失败")
	}

	fields := Translate(err)
	for _, key := range []string{"academic_year", "midtermGrade", "gradeStatus"} {
		if len(fields[key]) == 0 {
			t.Errorf("缺少字段 %s 的错误，实际: %v", key, fields)
		}
	}
	if !strings.Contains(fields["academic_year"][0], "YYYY-YYYY") {
		t.Errorf("academic_year 提示不符: %s", fields["academic_year"][0])
	}
}

func TestTranslate_ZeroIsAcceptedForPointer(t *testing.T) {
	if err := Setup(); err != nil {
		t.Fatal(err)
	}
	zero := 0.0
	if err := binding.Validator.ValidateStruct(&sample{Year: "2024-2025", Score: &zero, Status: "i*"}); err != nil {
		t.Errorf("0 分与 i* 状态应合法: %v", err)
	}
}

func TestTranslate_JSONErrors(t *testing.T) {
	var v sample
	err := json.Unmarshal([]byte(`{"midtermGrade":"abc"}`), &v)
	fields := Translate(err)
	if len(fields["midtermGrade"]) == 0 {
		t.Errorf("类型错误应按字段返回，实际: %v", fields)
	}

	err = json.Unmarshal([]byte(`{`), &v)
	if got := Translate(err); len(got["body"]) == 0 {
		t.Errorf("语法错误应归入 body，实际: %v", got)
	}

	if got := Translate(errors.New("boom")); got["body"][0] != "boom" {
		t.Errorf("未知错误应原样返回，实际: %v", got)
	}
}

func TestIsAcademicYear(t *testing.T) {
	cases := map[string]bool{
		"2024-2025": true,
		"2024":      false,
		"24-25":     false,
		"2024-25":   false,
		"":          false,
	}
	for in, want := range cases {
		if got := IsAcademicYear(in); got != want {
			t.Errorf("IsAcademicYear(%q)=%v, want %v", in, got, want)
		}
	}
}
