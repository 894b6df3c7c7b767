package xhash

import "errors"

// 注册与查找相关的错误
var (
	// ErrUnknownHashFunction 表示哈希算法名称未注册
	ErrUnknownHashFunction = errors.New("xhash: unknown hash function")

	// ErrDuplicateHashFunction 表示同名算法已注册
	ErrDuplicateHashFunction = errors.New("xhash: hash function already registered")

	// ErrInvalidHashFunction 表示注册参数不合法（空名称、nil 函数或不支持的位宽）
	ErrInvalidHashFunction = errors.New("xhash: invalid hash function")
)
