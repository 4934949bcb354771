package procrun

import (
	"runtime"
	"strings"
)

// shellMeta lists characters that make a POSIX shell reinterpret an argument.
const shellMeta = " \t\n\"'`$&|;<>()[]{}*?!~#\\"

// shellInvocation returns the executable and arguments that run cmd through
// the platform shell.
func shellInvocation(cmd Command) (string, []string) {
	line := cmd.String()
	if runtime.GOOS == "windows" {
		return "cmd.exe", []string{"/d", "/s", "/c", line}
	}
	return "/bin/sh", []string{"-c", line}
}

// quote single-quotes s when the shell would otherwise split or expand it.
func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellMeta) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
