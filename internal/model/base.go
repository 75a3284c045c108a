package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 分数以 JSON number 输出，而非带引号的字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel 通用审计字段（不对外输出）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// AllModels 返回全部表模型（测试环境 AutoMigrate 使用，生产环境走 SQL 迁移）
func AllModels() []interface{} {
	return []interface{}{
		&Setting{},
		&Subject{},
		&Doctor{},
		&DoctorSubject{},
		&Student{},
		&StudentSubject{},
		&Grade{},
	}
}
