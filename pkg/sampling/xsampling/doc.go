// Package xsampling 提供基于哈希的一致性采样和确定性分区。
//
// # 一致性采样
//
// [ThresholdSampler] 对 key 做加盐哈希（见 xhash），摘要小于阈值
// floor(rate * MaxDigest) 时采样。相同的 (算法, 盐值, rate, key) 在所有运行、
// 所有进程中得到相同的决策，因此可以在多张事件表上抽取同一批用户：
//
//	s, err := xsampling.NewThresholdSampler(xhash.XXHash32, "DEFAULT_SALT", 0.01)
//	if err != nil {
//	    return err
//	}
//	for line := range xsampling.Filter(s, lines, func(l string) []byte { return []byte(l) }) {
//	    fmt.Println(line)
//	}
//
// 边界：rate=0 不采样；rate=1 采样全部。rate=1 单独处理，
// 否则摘要恰为 MaxDigest 的 key 会因严格小于比较而被排除。
//
// # 确定性分区
//
// [Partitioner] 按比率列表把记录分到互不相交的桶，桶边界为累计比率对应的阈值。
// 比率之和小于 1.0 时多出一个尾部剩余桶，索引为 len(ratios)。
// [Partition] 单次遍历分桶，[Bucket] 惰性产出单个桶。
//
// # 失败策略
//
// 所有配置错误（非法 rate、非法比率、未注册算法）在构造时返回，
// 构造成功后 ShouldInclude 与 Assign 不会失败。
//
// # 并发安全
//
// 采样器和分区器构造后只读，可在多个 goroutine 中共享。
package xsampling
