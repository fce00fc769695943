package config

import "github.com/decker502/ghostscare/pkg/embedded"

// readFile 读取配置文件：优先嵌入资源，找不到时读磁盘
func readFile(path string) ([]byte, error) {
	return embedded.Load(path)
}
