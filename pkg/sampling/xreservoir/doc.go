// Package xreservoir 提供固定容量的蓄水池采样（Algorithm R）。
//
// 从长度未知的流中单次遍历抽取 size 条记录，每条记录被选中的概率均为 size/n。
// 时间 O(n)，空间 O(size)。
//
// # 随机源
//
// 每个 [Reservoir] 独占一个 *rand.Rand（math/rand/v2）：
//
//   - [WithSeed] / [WithSeedString]：固定种子，相同输入得到相同结果
//   - [WithRand]：由调用方提供随机源
//   - 默认：以 crypto/rand 熵初始化，两次运行结果几乎必然不同
//
// 不使用全局随机源，因此多个采样可以并发执行而互不影响。
//
// # 保持顺序
//
// [WithKeepOrder] 使结果按记录在流中的到达顺序返回，而不是槽位顺序。
//
// # 总体不足
//
// 流的记录数少于 size 时，返回全部记录（按到达顺序），不返回错误。
// 调用方可通过 [Reservoir.Count] 与 [Reservoir.Cap] 比较来识别这种情况。
// size 为 0 时直接返回空结果，不读取输入。
package xreservoir
