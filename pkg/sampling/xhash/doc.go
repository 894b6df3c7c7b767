// Package xhash 提供可注册的带种子哈希函数，以及"先哈希盐值得到种子"的加盐哈希器。
//
// # 哈希注册表
//
// 每个算法以名称（[Algorithm]）注册，对应一个 (key, seed) -> digest 的纯函数
// 和摘要位宽（32 或 64）。位宽决定摘要上界 [Hash.MaxDigest]，采样阈值由它换算。
//
// 内置算法：
//
//   - xxhash32: github.com/OneOfOne/xxhash（默认算法）
//   - spooky32 / spooky64: github.com/dgryski/go-spooky
//   - murmur3_32: github.com/spaolacci/murmur3
//   - xxhash64: github.com/cespare/xxhash/v2
//   - xxh3: github.com/zeebo/xxh3
//
// 未注册的名称在 [Lookup] 和 [NewSalted] 中返回 [ErrUnknownHashFunction]，
// 不会回退到其他算法。可通过 [Register] 扩展新算法。
//
// # 加盐哈希
//
// [NewSalted] 在构造时用种子 0 哈希一次盐值得到会话种子，之后每条记录都以该种子哈希：
//
//	h, err := xhash.NewSalted(xhash.XXHash32, "DEFAULT_SALT")
//	digest := h.DigestString("user-42")
//
// 相同的 (算法, 盐值) 在任意进程中都得到相同的种子和相同的摘要，
// 这是一致性采样跨进程可重放的基础。
//
// # 并发安全
//
// 注册表由读写锁保护；[Salted] 构造后只读，可在多个 goroutine 中共享。
package xhash
