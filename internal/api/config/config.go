package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
// 环境变量可覆盖文件配置，如 WIKISTARS_DATABASE_DSN 覆盖 database.dsn
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	if path := os.Getenv("WIKISTARS_CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("wikistars")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
