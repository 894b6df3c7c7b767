package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/omeyang/xsample/pkg/lifecycle/xrun"
)

// 退出码
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError 参数或配置错误，退出码 2
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func asUsageError(err error) error {
	if err == nil {
		return nil
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return err
	}
	return &usageError{err: err}
}

// exitCode 把错误映射为退出码并向 stderr 输出错误信息
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "xsample: %v\n", ue)
		fmt.Fprintln(stderr, "Run 'xsample --help' for usage.")
		return exitUsage
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, xrun.ErrSignal) {
		fmt.Fprintln(stderr, "xsample: interrupted")
		return exitFailure
	}
	fmt.Fprintf(stderr, "xsample: %v\n", err)
	return exitFailure
}
