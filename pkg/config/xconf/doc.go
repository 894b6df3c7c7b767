// Package xconf 从 YAML 或 JSON 文件加载采样配置，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 采样配置
//
// Profile 描述一次采样运行：采样方式、比率或容量、哈希算法、盐值、
// 列选择与日志设置。LoadProfile 在 DefaultProfile 的基础上叠加文件中的值，
// 文件中未出现的字段保持默认值：
//
//	p, err := xconf.LoadProfile("sample.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := p.Validate(); err != nil {
//	    return err // errors.Is(err, xconf.ErrInvalidProfile)
//	}
//
// 示例文件：
//
//	method: hash
//	rate: 0.01
//	hash: xxhash32
//	salt: users-2024
//	column: 0
//	separator: "\t"
//	log:
//	  level: debug
//	  format: json
//
// # Unmarshal
//
// Unmarshal 使用 mapstructure 反序列化，允许弱类型转换
// （例如字符串 "0.5" 可转为 float64）。
package xconf
