package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLetterGrade_Boundaries(t *testing.T) {
	cases := []struct {
		total string
		want  string
	}{
		{"100", "A"},
		{"80.00", "A"},
		{"79.99", "B+"},
		{"75", "B+"},
		{"74.99", "B"},
		{"65", "B"},
		{"64.99", "C+"},
		{"60", "C+"},
		{"59.99", "C"},
		{"50.00", "C"},
		{"49.99", "F"},
		{"0", "F"},
	}
	for _, tc := range cases {
		got := LetterGrade(decimal.RequireFromString(tc.total))
		if got != tc.want {
			t.Errorf("LetterGrade(%s) 期望 %s，实际 %s", tc.total, tc.want, got)
		}
	}
}

func TestComputeTotal_Exact(t *testing.T) {
	// 0.1 + 0.2 在浮点下不等于 0.3，精确小数下必须相等
	total := ComputeTotal(toScore(0.1), toScore(0.2), toScore(10.35), toScore(19.35))
	if !total.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("期望 30.00，实际 %s", total)
	}
}

func TestToScore_RoundsToTwoPlaces(t *testing.T) {
	if got := toScore(12.345).String(); got != "12.35" {
		t.Errorf("期望 12.35，实际 %s", got)
	}
}

func TestCeilingsConsistent(t *testing.T) {
	d := decimal.RequireFromString
	if !ceilingsConsistent(d("25"), d("15"), d("20"), d("40"), d("100")) {
		t.Error("25+15+20+40 == 100 应通过")
	}
	if !ceilingsConsistent(d("25"), d("15"), d("20"), d("40"), d("100.01")) {
		t.Error("相差 0.01 应通过")
	}
	if ceilingsConsistent(d("25"), d("15"), d("20"), d("40"), d("100.02")) {
		t.Error("相差 0.02 应拒绝")
	}
	if ceilingsConsistent(d("25"), d("15"), d("20"), d("40"), d("90")) {
		t.Error("相差 10 应拒绝")
	}
}
