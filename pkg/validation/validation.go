package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once     sync.Once
	setupErr error
	trans    ut.Translator
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Setup 为 gin 默认校验器注册中文翻译、JSON 字段名与自定义规则
// 可重复调用，仅首次生效
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin 校验引擎不是 go-playground/validator")
			return
		}
		setupErr = Register(v)
	})
	return setupErr
}

// Register 在指定校验器上注册规则与翻译
func Register(v *validator.Validate) error {
	locale := zh.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("zh")

	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return IsAcademicYear(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("注册 academic_year 规则失败: %w", err)
	}

	if err := zhtrans.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("注册中文翻译失败: %w", err)
	}

	return v.RegisterTranslation("academic_year", trans,
		func(t ut.Translator) error {
			return t.Add("academic_year", "{0}必须为 YYYY-YYYY 格式", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("academic_year", fe.Field())
			return msg
		},
	)
}

// IsAcademicYear 判断是否为 "YYYY-YYYY" 格式
func IsAcademicYear(s string) bool {
	return academicYearPattern.MatchString(s)
}

// Translate 将绑定/校验错误转换为以 JSON 字段名为键的错误映射
func Translate(err error) map[string][]string {
	fields := make(map[string][]string)

	var ves validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &ves):
		for _, fe := range ves {
			fields[fe.Field()] = append(fields[fe.Field()], translate(fe))
		}
	case errors.As(err, &typeErr):
		name := typeErr.Field
		if name == "" {
			name = "body"
		}
		fields[name] = append(fields[name], fmt.Sprintf("%s类型错误，期望 %s", name, typeErr.Type.String()))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fields["body"] = []string{"请求体不是合法的 JSON"}
	default:
		fields["body"] = []string{err.Error()}
	}

	return fields
}

func translate(fe validator.FieldError) string {
	if trans == nil {
		return fe.Error()
	}
	return fe.Translate(trans)
}

// fieldName 优先使用 json/form/uri 标签名作为字段名
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
