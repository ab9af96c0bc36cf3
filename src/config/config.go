package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config структура конфигурации приложения
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Similarity struct {
		Path      string `yaml:"archive"`
		Entry     string `yaml:"entry"`
		Required  bool   `yaml:"required"` // Без матрицы процесс не стартует
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"similarity"`
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
		RateLimit   int      `yaml:"rate_limit"` // Запросов в минуту с одного IP, 0 без ограничения
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	var cfg Config
	cfg.Database.Path = "./database.db"
	cfg.Similarity.Path = "./similarity.zip"
	cfg.Similarity.Entry = "similarity.npy"
	cfg.Similarity.CacheSize = 1024
	cfg.Server.Addr = ":8080"
	cfg.Server.RateLimit = 120
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	return cfg
}

// LoadConfig загружает конфигурацию из YAML файла поверх значений по умолчанию.
// Отсутствующий файл не считается ошибкой. Переменные окружения имеют приоритет.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return config, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("ошибка парсинга YAML: %w", err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return config, nil
}

// applyEnv переопределяет значения из переменных окружения
func applyEnv(config *Config) error {
	if v := os.Getenv("BOOKREC_DB_PATH"); v != "" {
		config.Database.Path = v
	}
	if v := os.Getenv("BOOKREC_SIMILARITY_PATH"); v != "" {
		config.Similarity.Path = v
	}
	if v := os.Getenv("BOOKREC_SIMILARITY_REQUIRED"); v != "" {
		required, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("некорректное значение BOOKREC_SIMILARITY_REQUIRED: %w", err)
		}
		config.Similarity.Required = required
	}
	if v := os.Getenv("BOOKREC_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("BOOKREC_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("некорректное значение BOOKREC_RATE_LIMIT: %w", err)
		}
		config.Server.RateLimit = limit
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	return nil
}

// Validate проверяет согласованность значений
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("путь к базе данных не может быть пустым")
	}
	if c.Similarity.Required && strings.TrimSpace(c.Similarity.Path) == "" {
		return fmt.Errorf("матрица сходства обязательна, но путь к ней не задан")
	}
	if strings.HasSuffix(strings.ToLower(c.Similarity.Path), ".zip") && c.Similarity.Entry == "" {
		return fmt.Errorf("для архива сходства нужно указать имя файла внутри архива")
	}
	if c.Similarity.CacheSize < 0 {
		return fmt.Errorf("размер кэша сходства не может быть отрицательным")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("ограничение запросов не может быть отрицательным")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("формат логов должен быть json или console")
	}
	return nil
}
