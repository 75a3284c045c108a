package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/config"
)

const serviceName = "watanya-back"

// NewLogger 根据 log.level / log.format 构建 zap 日志器
//
//	json    生产编码，ISO8601 时间，耗时以毫秒输出，不采样（访问日志需逐条保留）
//	console 开发编码，彩色级别，本地调试用
//
// 所有日志带 service 字段
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	zapCfg, err := encodingConfig(cfg.Format)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level
	zapCfg.InitialFields = map[string]interface{}{"service": serviceName}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}
	return logger, nil
}

func encodingConfig(format string) (zap.Config, error) {
	switch format {
	case "console":
		c := zap.NewDevelopmentConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		c.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return c, nil
	case "", "json":
		c := zap.NewProductionConfig()
		c.Sampling = nil
		c.EncoderConfig.TimeKey = "time"
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		c.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
		return c, nil
	default:
		return zap.Config{}, fmt.Errorf("不支持的日志格式 %q（可选 json、console）", format)
	}
}
