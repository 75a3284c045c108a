package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
)

// lookupFunc 按唯一字段查找记录 ID，未找到时返回 gorm.ErrRecordNotFound
type lookupFunc func(ctx context.Context, value string) (uint, error)

// uniqueField 一项唯一性约束
type uniqueField struct {
	field  string // JSON 字段名
	value  string // 空值跳过
	lookup lookupFunc
}

// lookupBy 把 GetByX 形式的仓储方法适配为 lookupFunc
func lookupBy[T any](find func(context.Context, string) (*T, error), id func(*T) uint) lookupFunc {
	return func(ctx context.Context, value string) (uint, error) {
		rec, err := find(ctx, value)
		if err != nil {
			return 0, err
		}
		return id(rec), nil
	}
}

// checkUnique 校验各唯一字段未被 selfID 以外的记录占用（新建时 selfID 为 0）
// 所有冲突字段一次性汇总为 ValidationError
func checkUnique(ctx context.Context, logger *zap.Logger, selfID uint, fields ...uniqueField) error {
	errs := pkgerrors.FieldErrors{}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		id, err := f.lookup(ctx, f.value)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			logger.Error("唯一性校验查询失败", zap.String("field", f.field), zap.Error(err))
			return err
		}
		if id != selfID {
			errs.Add(f.field, f.field+" 已被占用")
		}
	}
	if len(errs) > 0 {
		return &pkgerrors.ValidationError{Message: "数据校验失败", Fields: errs}
	}
	return nil
}

// errDuplicateRecord 插入时唯一索引冲突（并发写入先于校验完成）
func errDuplicateRecord() error {
	return &pkgerrors.ValidationError{Message: "记录已存在"}
}
