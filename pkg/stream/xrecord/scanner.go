package xrecord

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// DefaultMaxLineSize 默认最大行长度（1 MiB）
const DefaultMaxLineSize = 1 << 20

// Scanner 按行读取输入
//
// 用法与 bufio.Scanner 相同：先遍历 All，再检查 Err。
// Scanner 只能遍历一次，不可并发使用。
type Scanner struct {
	sc  *bufio.Scanner
	num int
	err error
}

// ScannerOption Scanner 配置选项
type ScannerOption func(*scannerOptions)

type scannerOptions struct {
	maxLineSize int
}

// WithMaxLineSize 设置最大行长度，超长的行使 Err 返回 bufio.ErrTooLong
//
// n <= 0 时忽略。
func WithMaxLineSize(n int) ScannerOption {
	return func(o *scannerOptions) {
		if n > 0 {
			o.maxLineSize = n
		}
	}
}

// NewScanner 创建按行读取 r 的 Scanner
func NewScanner(r io.Reader, opts ...ScannerOption) *Scanner {
	o := scannerOptions{maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &Scanner{}
	if r == nil {
		s.err = ErrNilReader
		return s
	}

	sc := bufio.NewScanner(r)
	initial := min(64*1024, o.maxLineSize)
	sc.Buffer(make([]byte, 0, initial), o.maxLineSize)
	s.sc = sc
	return s
}

// All 惰性产出所有记录
//
// 调用方停止迭代时不再继续读取。
func (s *Scanner) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if s.sc == nil {
			return
		}
		for s.sc.Scan() {
			rec := Record{Line: strings.TrimSuffix(s.sc.Text(), "\r"), Num: s.num}
			s.num++
			if !yield(rec) {
				return
			}
		}
		if err := s.sc.Err(); err != nil && s.err == nil {
			s.err = err
		}
	}
}

// Err 返回读取过程中遇到的第一个错误（io.EOF 不视为错误）
func (s *Scanner) Err() error {
	return s.err
}

// Count 返回已产出的记录数
func (s *Scanner) Count() int {
	return s.num
}
