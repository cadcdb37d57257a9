package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DefaultStorageKey ключ, под которым по умолчанию хранится коллекция заметок
const DefaultStorageKey = "memo-app-data"

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// Load читает конфигурацию приложения, подставляя значения по умолчанию.
// Отсутствующий файл не является ошибкой: используются только значения по умолчанию.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		_, err := os.Stat(configFile)
		switch {
		case err == nil:
			if err := readInto(v, configFile); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// работаем на значениях по умолчанию
		default:
			return nil, fmt.Errorf("os.Stat: %w", err)
		}
	}

	cfg, err := unmarshal[Config](v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readInto(v *viper.Viper, configFile string) error {
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("v.ReadInConfig: %w", err)
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		// Значение остается строкой: числа и bool приводит Unmarshal по типу поля,
		// а строковые поля (токены, пароли) не теряют ведущие нули
		v.Set(k, expandEnvWithDefaults(value))
	}

	return nil
}

func unmarshal[C any](v *viper.Viper) (*C, error) {
	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := ".memo"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".memo")
	}

	v.SetDefault("logger.level", "info")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.file.dir", dataDir)
	v.SetDefault("storage.sqlite.path", filepath.Join(dataDir, "memo.db"))
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.prefix", "")

	v.SetDefault("server.port_grpc", 50051)
	v.SetDefault("server.port_http", 8080)
	v.SetDefault("server.http_read_timeout", 15)
	v.SetDefault("server.http_write_timeout", 15)
	v.SetDefault("server.http_idle_timeout", 60)
	v.SetDefault("server.http_read_header_timeout", 5)
	v.SetDefault("server.graceful_shutdown_timeout", 10)
	v.SetDefault("server.auth_token", "")

	v.SetDefault("gateway.cors_allowed_origins", "*")
	v.SetDefault("gateway.cors_max_age", 86400)
	v.SetDefault("gateway.rate_limit_rps", 100)
	v.SetDefault("gateway.rate_limit_burst", 10)

	v.SetDefault("view.narrow_width", 80)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Storage == nil || c.Storage.Key == "" {
		return errors.New("storage.key cannot be empty")
	}
	if c.View == nil || c.View.NarrowWidth < 0 {
		return errors.New("view.narrow_width must not be negative")
	}
	return nil
}
