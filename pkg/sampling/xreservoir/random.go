package xreservoir

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// newEntropyRand 返回以系统熵初始化的随机源
//
// 只在构造时读取一次 crypto/rand，后续抽样走 PCG。
// crypto/rand.Read 失败表示系统熵源不可用，此时 panic。
func newEntropyRand() *mrand.Rand {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("xreservoir: crypto/rand.Read failed: " + err.Error())
	}
	return mrand.New(mrand.NewPCG(
		binary.LittleEndian.Uint64(buf[:8]),
		binary.LittleEndian.Uint64(buf[8:]),
	))
}

// newSeededRand 返回由 seed 确定的随机源
func newSeededRand(seed uint64) *mrand.Rand {
	// PCG 需要两个 64 位状态，第二个由 seed 派生，保证不同 seed 的序列互不相关
	return mrand.New(mrand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
