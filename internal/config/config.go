package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress    string        `json:"server_address"`
	BaseURL          string        `json:"base_url"`
	DatabaseDSN      string        `json:"database_dsn"`
	PgMigrationsPath string        `json:"pg_migrations_path"`
	RedisAddr        string        `json:"redis_addr"`
	RedisPassword    string        `json:"redis_password"`
	RedisDB          int           `json:"redis_db"`
	CacheTTL         time.Duration `json:"cache_ttl"`
	Mode             string        `json:"mode"`
	CodeLength       int           `json:"code_length"`
	CreateRetries    int           `json:"create_retries"`
	SequenceKey      string        `json:"sequence_key"`
	AuthSecret       string        `json:"auth_secret"`
	EnableHTTPS      bool          `json:"enable_https"`
	TLSCertPath      string        `json:"tls_cert_path"`
	TLSKeyPath       string        `json:"tls_key_path"`
}

// Режимы генерации кодов
const (
	ModeRandom   = "random"
	ModeSequence = "sequence"
)

// NewConfig инициализирует конфигурацию на основе аргументов командной строки
func NewConfig() *Config {

	viper.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("PG_MIGRATIONS_PATH", "internal/migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "24h")
	viper.SetDefault("SHORTENER_MODE", ModeRandom)
	viper.SetDefault("CODE_LENGTH", 8)
	viper.SetDefault("CREATE_RETRIES", 5)
	viper.SetDefault("SEQUENCE_KEY", "url:id:seq")
	viper.SetDefault("AUTH_SECRET", "change-me")
	viper.SetDefault("ENABLE_HTTPS", false)
	viper.SetDefault("TLS_CERT_PATH", "cert.pem")
	viper.SetDefault("TLS_KEY_PATH", "key.pem")

	viper.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	serverAddress := flag.String("a", "", "server address")
	baseURL := flag.String("b", "", "base URL")
	databaseDSN := flag.String("d", "", "PostgreSQL DSN")
	redisAddr := flag.String("r", "", "Redis address")
	mode := flag.String("m", "", "code generation mode: random or sequence")
	enableHTTPS := flag.Bool("s", false, "enable HTTPS")
	tlsCertPath := flag.String("cert", "", "path to TLS certificate")
	tlsKeyPath := flag.String("key", "", "path to TLS key")
	configPath := flag.String("c", "", "path to JSON config file")
	flag.StringVar(configPath, "config", "", "path to JSON config file")

	flag.Parse()

	// Загружаем JSON-конфигурацию (если указана)
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}

	type rawJSON Config
	jsonCfg := &rawJSON{}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Printf("Не удалось прочитать JSON-файл конфигурации %q: %v", *configPath, err)
		} else if err := json.Unmarshal(data, jsonCfg); err != nil {
			log.Printf("Ошибка разбора JSON-файла конфигурации: %v", err)
		}
	}

	// Если переменные окружения заданы — они имеют высший приоритет
	cfg := &Config{
		ServerAddress:    viper.GetString("SERVER_ADDRESS"),
		BaseURL:          viper.GetString("BASE_URL"),
		DatabaseDSN:      viper.GetString("DATABASE_DSN"),
		PgMigrationsPath: viper.GetString("PG_MIGRATIONS_PATH"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		RedisDB:          viper.GetInt("REDIS_DB"),
		CacheTTL:         viper.GetDuration("CACHE_TTL"),
		Mode:             viper.GetString("SHORTENER_MODE"),
		CodeLength:       viper.GetInt("CODE_LENGTH"),
		CreateRetries:    viper.GetInt("CREATE_RETRIES"),
		SequenceKey:      viper.GetString("SEQUENCE_KEY"),
		AuthSecret:       viper.GetString("AUTH_SECRET"),
		EnableHTTPS:      viper.GetBool("ENABLE_HTTPS"),
		TLSCertPath:      viper.GetString("TLS_CERT_PATH"),
		TLSKeyPath:       viper.GetString("TLS_KEY_PATH"),
	}

	// Значения из JSON-файла подставляем там, где окружение молчит
	applyJSON(cfg, (*Config)(jsonCfg))

	// Если флаг передан, но переменной окружения нет — используем флаг
	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *databaseDSN != "" {
		cfg.DatabaseDSN = *databaseDSN
		os.Setenv("DATABASE_DSN", cfg.DatabaseDSN)
	}
	if *redisAddr != "" {
		cfg.RedisAddr = *redisAddr
	}
	if *mode != "" {
		cfg.Mode = *mode
	}

	// Включаем TLS
	if *enableHTTPS {
		cfg.EnableHTTPS = true
	}
	if *tlsCertPath != "" {
		cfg.TLSCertPath = *tlsCertPath
	}
	if *tlsKeyPath != "" {
		cfg.TLSKeyPath = *tlsKeyPath
	}

	log.Printf("Инициализация конфигурации: ServerAddress=%s", cfg.ServerAddress)
	log.Printf("Инициализация конфигурации: BaseURL=%s", cfg.BaseURL)
	log.Printf("Инициализация конфигурации: DatabaseDSN=%s", cfg.DatabaseDSN)
	log.Printf("Инициализация конфигурации: PgMigrationsPath=%s", cfg.PgMigrationsPath)
	log.Printf("Инициализация конфигурации: RedisAddr=%s", cfg.RedisAddr)
	log.Printf("Инициализация конфигурации: Mode=%s", cfg.Mode)
	log.Printf("Инициализация конфигурации: EnableHTTPS=%v", cfg.EnableHTTPS)

	// Проверка корректности конфигурации
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Ошибка конфигурации: %v\n", err)
	}

	return cfg
}

// applyJSON переносит непустые значения из JSON-конфига туда, где
// окружение и .env оставили значения по умолчанию пустыми
func applyJSON(cfg, jsonCfg *Config) {
	if cfg.DatabaseDSN == "" && jsonCfg.DatabaseDSN != "" {
		cfg.DatabaseDSN = jsonCfg.DatabaseDSN
	}
	if jsonCfg.ServerAddress != "" && os.Getenv("SERVER_ADDRESS") == "" {
		cfg.ServerAddress = jsonCfg.ServerAddress
	}
	if jsonCfg.BaseURL != "" && os.Getenv("BASE_URL") == "" {
		cfg.BaseURL = jsonCfg.BaseURL
	}
	if jsonCfg.RedisAddr != "" && os.Getenv("REDIS_ADDR") == "" {
		cfg.RedisAddr = jsonCfg.RedisAddr
	}
	if jsonCfg.Mode != "" && os.Getenv("SHORTENER_MODE") == "" {
		cfg.Mode = jsonCfg.Mode
	}
	if jsonCfg.AuthSecret != "" && os.Getenv("AUTH_SECRET") == "" {
		cfg.AuthSecret = jsonCfg.AuthSecret
	}
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("базовый URL не может быть пустым")
	}
	if cfg.Mode != ModeRandom && cfg.Mode != ModeSequence {
		return fmt.Errorf("неизвестный режим генерации кодов: %q", cfg.Mode)
	}
	if cfg.CodeLength < 1 || cfg.CodeLength > 32 {
		return fmt.Errorf("длина кода должна быть в диапазоне 1..32")
	}
	if cfg.CreateRetries < 1 {
		return fmt.Errorf("число попыток создания должно быть положительным")
	}
	return nil
}
