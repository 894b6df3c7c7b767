package xconf

import "errors"

// 加载采样配置时的错误，均可用 errors.Is 判断。
var (
	// ErrEmptyPath 未指定配置文件路径。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 文件扩展名既不是 YAML 也不是 JSON。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 读取配置文件失败，例如文件不存在或无权限。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 文件内容不是合法的 YAML/JSON。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 字段类型与 Profile 不匹配，例如 rate 写成了非数字。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrInvalidProfile 采样参数越界或互相矛盾，由 Profile.Validate 返回。
	ErrInvalidProfile = errors.New("xconf: invalid profile")
)
