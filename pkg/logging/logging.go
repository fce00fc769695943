// Package logging 配置全局日志
//
// 各组件通过 log.WithPrefix("组件名") 派生子日志器，子日志器在创建时复制根日志器的级别，
// 因此 Setup 必须在创建任何组件之前调用。
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup 设置根日志器
// verbose 为 true 时输出调试日志，否则只输出警告和错误
func Setup(verbose bool) *log.Logger {
	return SetupWriter(os.Stderr, verbose)
}

// SetupWriter 与 Setup 相同，但输出到指定 writer
func SetupWriter(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ghostscare",
		Level:           Level(verbose),
	})
	log.SetDefault(logger)
	return logger
}

// Level 返回 verbose 对应的日志级别
func Level(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.WarnLevel
}
