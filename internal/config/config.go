package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Export ExportConfig `toml:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ExportConfig 导出相关配置
type ExportConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20870,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Export: ExportConfig{
			DefaultLimit: 10000,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ConfigPath 配置文件路径（可执行文件同目录下的 config.toml）
func ConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfig 从 config.toml 加载配置，文件不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom 从指定路径加载配置
func LoadConfigFrom(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("HERITAGE_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, nil
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	return SaveConfigTo(ConfigPath(), config)
}

// SaveConfigTo 保存配置到指定路径
func SaveConfigTo(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录存在
// 相对路径相对于可执行文件所在目录解析，绝对路径原样使用
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := resolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 创建子目录
	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(resolveDataDir(config), subdir, filename)
}

func resolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}
