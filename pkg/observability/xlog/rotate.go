package xlog

import (
	"fmt"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转默认值
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 7
)

// RotationOption 日志轮转选项
type RotationOption func(*rotationConfig)

type rotationConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
}

// WithMaxSize 单个日志文件最大大小（MB），必须大于 0
func WithMaxSize(mb int) RotationOption {
	return func(c *rotationConfig) { c.maxSizeMB = mb }
}

// WithMaxBackups 保留的备份文件数量，0 表示不限制
func WithMaxBackups(n int) RotationOption {
	return func(c *rotationConfig) { c.maxBackups = n }
}

// WithMaxAge 备份保留天数，0 表示不按天数清理
func WithMaxAge(days int) RotationOption {
	return func(c *rotationConfig) { c.maxAgeDays = days }
}

// WithCompress 是否 gzip 压缩备份
func WithCompress(compress bool) RotationOption {
	return func(c *rotationConfig) { c.compress = compress }
}

// WithLocalTime 备份文件名使用本地时间（默认 UTC）
func WithLocalTime(local bool) RotationOption {
	return func(c *rotationConfig) { c.localTime = local }
}

// newRotator 创建 lumberjack 轮转写入器
func newRotator(filename string, opts ...RotationOption) (*lumberjack.Logger, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := rotationConfig{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch {
	case cfg.maxSizeMB <= 0:
		return nil, fmt.Errorf("%w: max size %d MB", ErrInvalidRotation, cfg.maxSizeMB)
	case cfg.maxBackups < 0:
		return nil, fmt.Errorf("%w: max backups %d", ErrInvalidRotation, cfg.maxBackups)
	case cfg.maxAgeDays < 0:
		return nil, fmt.Errorf("%w: max age %d days", ErrInvalidRotation, cfg.maxAgeDays)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Clean(filename),
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
		LocalTime:  cfg.localTime,
	}, nil
}
