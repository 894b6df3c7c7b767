package xrun

import (
	"errors"
	"fmt"
	"os"
)

// ErrSignal 运行被系统信号中断，*SignalError 均匹配此错误。
var ErrSignal = errors.New("received signal")

// ErrNilFunc Go 或 Run 收到了 nil 任务。
var ErrNilFunc = errors.New("xrun: nil function")

// SignalError 记录中断运行的信号
//
// 采样任务被 Ctrl-C 或 SIGTERM 打断时，Run 返回此错误；
// 需要区分具体信号时用 errors.As 取出 Signal。
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Is 让 errors.Is(err, ErrSignal) 对任意信号成立
func (e *SignalError) Is(target error) bool {
	return target == ErrSignal
}

func (e *SignalError) Unwrap() error {
	return ErrSignal
}
