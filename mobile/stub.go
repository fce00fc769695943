//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口
//
// 桌面构建只编译本文件；游戏初始化在 mobile.go（-tags mobile）。
package mobile

// Dummy 供 gomobile bind 导出，桌面构建下为空
func Dummy() {}
