package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigFile настройки файлового хранилища
type ConfigFile struct {
	Dir string `mapstructure:"dir"`
}

// ConfigSQLite настройки хранилища SQLite
type ConfigSQLite struct {
	Path string `mapstructure:"path"`
}

// ConfigPostgres настройки хранилища Postgres
type ConfigPostgres struct {
	DSN string `mapstructure:"dsn"`
}

// ConfigRedis настройки хранилища Redis
type ConfigRedis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ConfigS3 настройки объектного хранилища
type ConfigS3 struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// ConfigStorage выбор и настройки хранилища заметок
type ConfigStorage struct {
	Driver   string          `mapstructure:"driver"` // memory, file, sqlite, postgres, redis, s3
	Key      string          `mapstructure:"key"`    // ключ, под которым хранится коллекция
	File     *ConfigFile     `mapstructure:"file"`
	SQLite   *ConfigSQLite   `mapstructure:"sqlite"`
	Postgres *ConfigPostgres `mapstructure:"postgres"`
	Redis    *ConfigRedis    `mapstructure:"redis"`
	S3       *ConfigS3       `mapstructure:"s3"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	PortGRPC                int    `mapstructure:"port_grpc"`
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
	AuthToken               string `mapstructure:"auth_token"` // пустой токен отключает авторизацию
}

// ConfigGateway настройки HTTP API
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigView настройки контроллера представления
type ConfigView struct {
	NarrowWidth int `mapstructure:"narrow_width"` // ширина, ниже которой показывается одна панель
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Storage *ConfigStorage `mapstructure:"storage"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	View    *ConfigView    `mapstructure:"view"`
}
