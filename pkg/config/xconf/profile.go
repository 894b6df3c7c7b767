package xconf

import (
	"fmt"
	"math"
	"strings"

	"github.com/omeyang/xsample/pkg/sampling/xhash"
)

// Method 采样方式
type Method string

// 支持的采样方式
const (
	// MethodHash 基于哈希阈值的一致性采样
	MethodHash Method = "hash"
	// MethodReservoir 固定容量的蓄水池采样
	MethodReservoir Method = "reservoir"
	// MethodPartition 按比率确定性分区
	MethodPartition Method = "partition"
)

// DefaultSalt 未配置盐值时使用的盐值
const DefaultSalt = "DEFAULT_SALT"

// DefaultSeparator 默认列分隔符
const DefaultSeparator = ","

// Profile 一次采样运行的配置
type Profile struct {
	Method Method `koanf:"method"`
	// Rate 哈希采样比率，范围 [0.0, 1.0]
	Rate float64 `koanf:"rate"`
	// Size 蓄水池容量
	Size int `koanf:"size"`
	// Hash 哈希算法名称
	Hash string `koanf:"hash"`
	// Salt 哈希盐值
	Salt string `koanf:"salt"`
	// Seed 蓄水池随机种子，为空时使用系统熵源
	Seed string `koanf:"seed"`
	// Column 作为采样 key 的列（从 0 开始），-1 表示整行
	Column    int    `koanf:"column"`
	Separator string `koanf:"separator"`
	// KeepOrder 蓄水池结果按输入顺序输出
	KeepOrder bool `koanf:"keep_order"`
	// Ratios 分区比率
	Ratios []float64 `koanf:"ratios"`
	// Prefix 分区输出文件前缀
	Prefix string `koanf:"prefix"`
	Log    Log    `koanf:"log"`
}

// Log 日志配置
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File 日志文件路径，为空时写 stderr
	File string `koanf:"file"`
}

// DefaultProfile 返回默认配置：整行哈希采样、比率 1.0、默认算法与盐值
func DefaultProfile() Profile {
	return Profile{
		Method:    MethodHash,
		Rate:      1.0,
		Hash:      string(xhash.Default),
		Salt:      DefaultSalt,
		Column:    -1,
		Separator: DefaultSeparator,
		Prefix:    "part",
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadProfile 从文件加载配置，未出现的字段保持 DefaultProfile 的值
func LoadProfile(path string, opts ...Option) (Profile, error) {
	cfg, err := New(path, opts...)
	if err != nil {
		return Profile{}, err
	}
	return ProfileFrom(cfg)
}

// ProfileFromBytes 从字节数据加载配置
func ProfileFromBytes(data []byte, format Format, opts ...Option) (Profile, error) {
	cfg, err := NewFromBytes(data, format, opts...)
	if err != nil {
		return Profile{}, err
	}
	return ProfileFrom(cfg)
}

// ProfileFrom 从已加载的配置读取 Profile
func ProfileFrom(cfg Config) (Profile, error) {
	p := DefaultProfile()
	if err := cfg.Unmarshal("", &p); err != nil {
		return Profile{}, err
	}
	p.Method = Method(strings.ToLower(strings.TrimSpace(string(p.Method))))
	return p, nil
}

// Validate 校验配置取值
//
// 在读取任何记录前调用；返回的错误均包装 ErrInvalidProfile，
// 未知哈希算法同时包装 xhash.ErrUnknownHashFunction。
func (p Profile) Validate() error {
	switch p.Method {
	case MethodHash:
		if math.IsNaN(p.Rate) || p.Rate < 0 || p.Rate > 1 {
			return fmt.Errorf("%w: rate %v out of range [0, 1]", ErrInvalidProfile, p.Rate)
		}
	case MethodReservoir:
		if p.Size < 0 {
			return fmt.Errorf("%w: negative size %d", ErrInvalidProfile, p.Size)
		}
	case MethodPartition:
		if len(p.Ratios) == 0 {
			return fmt.Errorf("%w: partition requires ratios", ErrInvalidProfile)
		}
		if p.Prefix == "" {
			return fmt.Errorf("%w: partition requires an output prefix", ErrInvalidProfile)
		}
	default:
		return fmt.Errorf("%w: unknown method %q", ErrInvalidProfile, string(p.Method))
	}

	if p.Method != MethodReservoir {
		if _, err := xhash.ParseAlgorithm(p.Hash); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
		}
	}

	if p.Column < -1 {
		return fmt.Errorf("%w: column %d is negative, use -1 for the whole line", ErrInvalidProfile, p.Column)
	}
	if p.Column >= 0 && p.Separator == "" {
		return fmt.Errorf("%w: column %d requires a separator", ErrInvalidProfile, p.Column)
	}

	switch strings.ToLower(p.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidProfile, p.Log.Format)
	}
	return nil
}
