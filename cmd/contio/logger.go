package main

import (
	"fmt"
	"io"
	"strings"
)

var logLevels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type cliLogger struct {
	w     io.Writer
	level int
}

func newCLILogger(w io.Writer, level string) *cliLogger {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		lvl = logLevels["warn"]
	}
	return &cliLogger{w: w, level: lvl}
}

func (l *cliLogger) log(level int, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "[%s] %s\n", tag, strings.TrimRight(msg, "\n"))
}

func (l *cliLogger) Debug(format string, args ...any) { l.log(0, "DBG", format, args...) }
func (l *cliLogger) Info(format string, args ...any)  { l.log(1, "INF", format, args...) }
func (l *cliLogger) Warn(format string, args ...any)  { l.log(2, "WRN", format, args...) }
func (l *cliLogger) Error(format string, args ...any) { l.log(3, "ERR", format, args...) }
