package game

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ResourceConfig 资源清单（assets/config/resources.yaml）
//
// 结构：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  level:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组可一起加载的资源
type ResourceGroup struct {
	Images []ResourceEntry `yaml:"images"`
	Sounds []ResourceEntry `yaml:"sounds"`
	Fonts  []ResourceEntry `yaml:"fonts"`
}

// ResourceEntry 单个资源定义
//
// 示例：
//
//	- id: IMAGE_HUMAN_IDLE
//	  path: images/human/idle
type ResourceEntry struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"` // 相对 base_path 的路径，可省略扩展名
}

// 省略扩展名时的默认格式
const (
	defaultImageExt = ".png"
	defaultSoundExt = ".mp3"
)

// ParseResourceConfig 解析资源清单并检查资源ID唯一
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if _, err := cfg.Index(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Index 构建资源ID到完整路径的映射
//
//	IMAGE_GHOST -> assets/images/ghost.png
//	SOUND_HUMAN_1 -> assets/sounds/human_1.mp3
func (c *ResourceConfig) Index() (map[string]string, error) {
	index := make(map[string]string)
	add := func(group string, entry ResourceEntry, defaultExt string) error {
		if entry.ID == "" {
			return fmt.Errorf("group %s: resource with empty id (path %q)", group, entry.Path)
		}
		if _, dup := index[entry.ID]; dup {
			return fmt.Errorf("group %s: duplicate resource id %s", group, entry.ID)
		}
		fullPath := buildFullPath(c.BasePath, entry.Path)
		if defaultExt != "" && filepath.Ext(fullPath) == "" {
			fullPath += defaultExt
		}
		index[entry.ID] = fullPath
		return nil
	}

	for name, group := range c.Groups {
		for _, img := range group.Images {
			if err := add(name, img, defaultImageExt); err != nil {
				return nil, err
			}
		}
		for _, snd := range group.Sounds {
			if err := add(name, snd, defaultSoundExt); err != nil {
				return nil, err
			}
		}
		for _, font := range group.Fonts {
			if err := add(name, font, ""); err != nil {
				return nil, err
			}
		}
	}
	return index, nil
}

// buildFullPath 拼接 base_path 与相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
