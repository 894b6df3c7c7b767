// xsample 对文本流做一致性采样、蓄水池采样与确定性分区。
//
// 用法:
//
//	xsample [选项] [文件...]
//	xsample split --ratios 0.2,0.3,0.5 [选项] [文件...]
//
// 未指定文件或文件为 "-" 时读取标准输入，结果写到标准输出。
//
// 选项:
//
//	-r, --rate     哈希采样比率 [0, 1]；蓄水池模式下为样本容量
//	-c, --col      作为采样 key 的列（从 0 开始），默认整行
//	-s, --seed     哈希盐值；蓄水池模式下为随机种子
//	--hash         哈希算法 (默认: xxhash32)
//	--sep          列分隔符 (默认: ",")
//	--method       hash 或 reservoir (默认: hash)
//	--order        蓄水池结果保持输入顺序
//	--config       YAML/JSON 配置文件，命令行选项覆盖文件中的值
//	--stats        结束时向标准错误输出记录计数
//	--log-level    日志级别 (默认: warn)
//	--log-format   text 或 json
//	--log-file     日志写入文件并按大小轮转
//
// 短选项的值可以紧跟选项，例如 -r0.5 -c3 -stest。
//
// 退出码:
//
//	0: 成功
//	1: 运行失败（读写错误、被信号中断）
//	2: 参数或配置错误
//
// 示例:
//
//	xsample -r 0.01 access.log                 # 按整行采样 1%
//	xsample -r 0.1 -c 2 --sep '\t' events.tsv  # 按第 3 列采样 10%
//	xsample --method reservoir -r 100 -s a     # 可复现地抽取 100 行
//	xsample split --ratios 0.8,0.1 --prefix ds data.csv
package main

import (
	"context"
	"os"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}
