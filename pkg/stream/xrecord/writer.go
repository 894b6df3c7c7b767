package xrecord

import (
	"bufio"
	"io"
)

// Writer 逐行写出记录
//
// 第一次写入失败后，后续写入直接返回同一错误。
type Writer struct {
	bw  *bufio.Writer
	n   int
	err error
}

// NewWriter 创建写入 w 的 Writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Write 写出一条记录并追加换行符
func (w *Writer) Write(r Record) error {
	return w.WriteLine(r.Line)
}

// WriteLine 写出一行并追加换行符
func (w *Writer) WriteLine(line string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.bw.WriteString(line); err != nil {
		w.err = err
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	w.n++
	return nil
}

// Flush 把缓冲区写入底层 Writer
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Count 返回已写出的行数
func (w *Writer) Count() int {
	return w.n
}
