package errors

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors 按字段名（JSON 名）聚合的错误信息
type FieldErrors map[string][]string

// Add 追加一条字段错误
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// ValidationError 输入校验失败（格式/范围/枚举/唯一性），对应 HTTP 422
type ValidationError struct {
	Message string
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.Message + ": " + strings.Join(keys, ", ")
}

// NewValidationError 创建单字段校验错误
func NewValidationError(message, field, detail string) *ValidationError {
	return &ValidationError{
		Message: message,
		Fields:  FieldErrors{field: {detail}},
	}
}

// ConstraintError 业务约束不满足（成绩超出上限、分项之和与总分不符），对应 HTTP 422
// Field 为空表示约束不针对单一字段
type ConstraintError struct {
	Field   string
	Message string
	Detail  string
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Fields 转换为字段错误映射
func (e *ConstraintError) Fields() FieldErrors {
	if e.Field == "" {
		return nil
	}
	return FieldErrors{e.Field: {e.Detail}}
}

// AsValidation 提取 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsConstraint 提取 ConstraintError
func AsConstraint(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
