package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/omeyang/xsample/pkg/stream/xrecord"
)

// input 依次读取多个输入源
//
// 未指定文件或文件名为 "-"（或 stdinArg）时读取 stdin。遍历结束后通过 Err 获取第一个错误。
type input struct {
	stdin io.Reader
	paths []string
	count int64
	err   error
}

func newInput(stdin io.Reader, paths []string) *input {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	return &input{stdin: stdin, paths: paths}
}

// check 在读取前确认所有文件可以打开，避免处理到一半才发现路径错误
func (in *input) check() error {
	for _, path := range in.paths {
		if isStdin(path) {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_ = f.Close()
	}
	return nil
}

// records 惰性产出所有输入源的记录，每条记录前检查 ctx 是否已取消
func (in *input) records(ctx context.Context) iter.Seq[xrecord.Record] {
	return func(yield func(xrecord.Record) bool) {
		for _, path := range in.paths {
			if !in.readOne(ctx, path, yield) {
				return
			}
		}
	}
}

// readOne 读取单个输入源，返回 false 表示应停止整个遍历
func (in *input) readOne(ctx context.Context, path string, yield func(xrecord.Record) bool) bool {
	r, closeFn, err := in.open(path)
	if err != nil {
		in.setErr(err)
		return false
	}
	defer closeFn()

	sc := xrecord.NewScanner(r)
	for rec := range sc.All() {
		if err := ctx.Err(); err != nil {
			in.setErr(err)
			return false
		}
		in.count++
		if !yield(rec) {
			return false
		}
	}
	if err := sc.Err(); err != nil {
		in.setErr(fmt.Errorf("read %s: %w", displayName(path), err))
		return false
	}
	return true
}

func (in *input) open(path string) (io.Reader, func(), error) {
	if isStdin(path) {
		return in.stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func (in *input) setErr(err error) {
	if in.err == nil {
		in.err = err
	}
}

// Err 返回遍历过程中的第一个错误
func (in *input) Err() error {
	return in.err
}

// Count 返回已产出的记录数
func (in *input) Count() int64 {
	return in.count
}

func isStdin(path string) bool {
	return path == "-" || path == stdinArg
}

func displayName(path string) string {
	if isStdin(path) {
		return "stdin"
	}
	return path
}
