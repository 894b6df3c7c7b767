// Package xrecord 提供行记录的读取、列拆分与采样 key 提取。
//
// # 读取
//
// Scanner 基于 bufio.Scanner 按行读取输入，以 iter.Seq[Record] 惰性产出记录，
// 遍历结束后通过 Err 获取读取错误：
//
//	sc := xrecord.NewScanner(os.Stdin)
//	for rec := range sc.All() {
//	    // ...
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
//
// 行尾的 "\n" 与 "\r\n" 会被去除。
//
// # 采样 key
//
// LineKey 以整行作为 key；ColumnKey 以分隔后的第 col 列作为 key。
// 缺失的列按空 key 参与哈希，不会报错。
//
// # 写出
//
// Writer 把记录逐行写回，内部带缓冲，结束时必须调用 Flush。
package xrecord
