//go:build mobile

package utils

// IsMobile 移动端构建恒为 true
// 关卡场景据此启用左右半屏触摸方向键
func IsMobile() bool { return true }
