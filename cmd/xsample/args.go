package main

import "strings"

// valueShortFlags 需要值的短选项
var valueShortFlags = map[byte]bool{'r': true, 'c': true, 's': true}

// stdinArg 代表标准输入的内部参数
//
// cli 遇到裸 "-" 会停止解析并丢弃其后的位置参数，因此先把 "-" 换成
// stdinArg，读取时再映射回标准输入。文件名不可能包含 NUL。
const stdinArg = "\x00stdin"

// normalizeArgs 在交给 cli 解析前整理参数
//
//   - 拆开紧跟值的短选项，例如 "-r0.5" 拆为 "-r" "0.5"；
//     选项与值之间带空格的单个参数（如 "-r 1.0"）同样拆开
//   - 作为位置参数的 "-" 替换为 stdinArg
//
// flags 为选项名到"是否需要值"的映射。需要值的选项后面紧跟的参数
// 原样保留（如 --sep -），"--" 之后的参数也原样保留。
func normalizeArgs(args []string, flags map[string]bool) []string {
	out := make([]string, 0, len(args)+4)
	expectValue := false
	for i, arg := range args {
		switch {
		case i == 0:
			out = append(out, arg)
		case expectValue:
			out = append(out, arg)
			expectValue = false
		case arg == "--":
			return append(out, args[i:]...)
		case arg == "-":
			out = append(out, stdinArg)
		case len(arg) > 2 && arg[0] == '-' && arg[1] != '-' && valueShortFlags[arg[1]] &&
			arg[2] != '=' && !hasFlag(flags, arg[1:]):
			out = append(out, arg[:2], strings.TrimSpace(arg[2:]))
		case len(arg) > 1 && arg[0] == '-':
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") {
				expectValue = flags[name]
			}
			out = append(out, arg)
		default:
			out = append(out, arg)
		}
	}
	return out
}

func hasFlag(flags map[string]bool, name string) bool {
	_, ok := flags[name]
	return ok
}
