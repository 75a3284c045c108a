package model

// ── 枚举取值 ──

// 专业方向
const (
	SpecializationCS = "CS"
	SpecializationIT = "IT"
)

// 年级
const (
	LevelOne   = "One"
	LevelTwo   = "Two"
	LevelThree = "Three"
	LevelFour  = "Four"
)

// 学期
const (
	SemesterOne = "One"
	SemesterTwo = "Two"
)

// 成绩状态
const (
	GradeStatusPass   = "pass"
	GradeStatusI      = "i"
	GradeStatusIStar  = "i*"
	GradeStatusFFStar = "ff*"
	GradeStatusOthers = "others"
)

// IsSpecialization 判断是否为合法专业方向
func IsSpecialization(s string) bool {
	return s == SpecializationCS || s == SpecializationIT
}

// IsLevel 判断是否为合法年级
func IsLevel(s string) bool {
	switch s {
	case LevelOne, LevelTwo, LevelThree, LevelFour:
		return true
	}
	return false
}

// IsSemester 判断是否为合法学期
func IsSemester(s string) bool {
	return s == SemesterOne || s == SemesterTwo
}
