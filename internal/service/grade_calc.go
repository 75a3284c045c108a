package service

import "github.com/shopspring/decimal"

// scorePlaces 分数保存精度（numeric(5,2)）
const scorePlaces = 2

var (
	// ceilingTolerance 分项之和与总分允许的绝对误差
	ceilingTolerance = decimal.New(1, -2)

	letterBrackets = []struct {
		min    decimal.Decimal
		letter string
	}{
		{decimal.NewFromInt(80), "A"},
		{decimal.NewFromInt(75), "B+"},
		{decimal.NewFromInt(65), "B"},
		{decimal.NewFromInt(60), "C+"},
		{decimal.NewFromInt(50), "C"},
	}
)

// toScore 将请求中的浮点分数转换为两位小数的精确值
func toScore(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(scorePlaces)
}

// ComputeTotal 各分项精确求和
func ComputeTotal(components ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c)
	}
	return total
}

// LetterGrade 总分对应的等级
//
//	≥80 A, ≥75 B+, ≥65 B, ≥60 C+, ≥50 C, 其余 F
func LetterGrade(total decimal.Decimal) string {
	for _, b := range letterBrackets {
		if total.GreaterThanOrEqual(b.min) {
			return b.letter
		}
	}
	return "F"
}

// ceilingsConsistent 四个分项上限之和与总分上限相差不超过 0.01
func ceilingsConsistent(midterm, practical, yearsWork, final, total decimal.Decimal) bool {
	diff := ComputeTotal(midterm, practical, yearsWork, final).Sub(total).Abs()
	return diff.LessThanOrEqual(ceilingTolerance)
}
