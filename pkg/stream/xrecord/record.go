package xrecord

import (
	"strings"

	"github.com/omeyang/xsample/pkg/sampling/xsampling"
)

// Record 一行输入
type Record struct {
	// Line 去除行尾换行符后的原始内容
	Line string
	// Num 从 0 开始的行号
	Num int
}

// Field 返回以 sep 分隔的第 col 列（从 0 开始）
//
// 列不存在或 col 为负数时返回 ("", false)。sep 为空时整行视为唯一的一列。
func (r Record) Field(sep string, col int) (string, bool) {
	if col < 0 {
		return "", false
	}
	if sep == "" {
		if col == 0 {
			return r.Line, true
		}
		return "", false
	}

	rest := r.Line
	for i := 0; ; i++ {
		field, tail, found := strings.Cut(rest, sep)
		if i == col {
			return field, true
		}
		if !found {
			return "", false
		}
		rest = tail
	}
}

// LineKey 以整行作为采样 key
func LineKey(r Record) []byte {
	return []byte(r.Line)
}

// ColumnKey 返回以第 col 列作为采样 key 的 KeyFunc
//
// 缺失的列按空 key 处理。col 为负数时返回 ErrInvalidColumn。
func ColumnKey(sep string, col int) (xsampling.KeyFunc[Record], error) {
	if col < 0 {
		return nil, ErrInvalidColumn
	}
	return func(r Record) []byte {
		field, _ := r.Field(sep, col)
		return []byte(field)
	}, nil
}

// KeyFor 根据列索引选择 KeyFunc
//
// col < 0 表示整行模式，返回 LineKey。
func KeyFor(sep string, col int) xsampling.KeyFunc[Record] {
	if col < 0 {
		return LineKey
	}
	// col >= 0 时 ColumnKey 不会失败
	key, _ := ColumnKey(sep, col)
	return key
}
