package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config configuração da aplicação
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Consul   ConsulConfig   `json:"consul"`
	Jaeger   JaegerConfig   `json:"jaeger"`
	Auth     AuthConfig     `json:"auth"`
	Geo      GeoConfig      `json:"geo"`
	CORS     CORSConfig     `json:"cors"`
	Log      LogConfig      `json:"log"`
}

// ServerConfig configuração do serviço HTTP
type ServerConfig struct {
	Name string `json:"name"` // nome do serviço (registro no Consul)
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig configuração do MySQL
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	MaxIdle  int    `json:"max_idle"`
	MaxOpen  int    `json:"max_open"`
}

// ConsulConfig configuração do Consul
type ConsulConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// JaegerConfig configuração de tracing
type JaegerConfig struct {
	Endpoint string  `json:"endpoint"`
	Sampler  float64 `json:"sampler"` // taxa de amostragem 0.0-1.0
}

// AuthConfig configuração de autenticação (JWT HS256)
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
	Issuer    string `json:"issuer"`
	Audience  string `json:"audience"`
	TTLHours  int    `json:"ttl_hours"`
}

// GeoConfig provedor de geocodificação (opcional; endpoint vazio desativa)
type GeoConfig struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

// CORSConfig origens liberadas para o frontend
type CORSConfig struct {
	AllowOrigins string `json:"allow_origins"`
}

// LogConfig configuração de log
type LogConfig struct {
	Backend string `json:"backend"` // logrus (padrão) ou zap
	Level   string `json:"level"`   // debug, info, warn, error
	Format  string `json:"format"`  // json, text
	Output  string `json:"output"`  // stdout, file
	Path    string `json:"path"`    // caminho do arquivo de log
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// LoadConfig carrega a configuração do arquivo JSON. Valores sensíveis podem
// ser sobrescritos por variáveis de ambiente (DB_PASSWORD, JWT_SECRET,
// GEO_API_KEY, PORT).
func LoadConfig(configPath string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		globalConfig = defaultConfig()
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			logrus.Warnf("Config file not found: %s, using default config", configPath)
		} else {
			data, readErr := os.ReadFile(configPath)
			if readErr != nil {
				err = fmt.Errorf("failed to read config file: %w", readErr)
				return
			}
			if unmarshalErr := json.Unmarshal(data, globalConfig); unmarshalErr != nil {
				err = fmt.Errorf("failed to parse config file: %w", unmarshalErr)
				return
			}
		}
		applyEnvOverrides(globalConfig)
	})

	if err != nil {
		return nil, err
	}
	return globalConfig, nil
}

// GetConfig retorna a configuração global
func GetConfig() *Config {
	if globalConfig == nil {
		return defaultConfig()
	}
	return globalConfig
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("GEO_API_KEY"); v != "" {
		cfg.Geo.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, convErr := strconv.Atoi(v); convErr == nil {
			cfg.Server.Port = port
		}
	}
}

// defaultConfig configuração padrão (ambiente de desenvolvimento)
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "dashboard-service",
			Host: "0.0.0.0",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "root",
			Database: "auto_socorro",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		Consul: ConsulConfig{
			Host: "localhost",
			Port: 8500,
		},
		Jaeger: JaegerConfig{
			Endpoint: "localhost:6831",
			Sampler:  1.0,
		},
		Auth: AuthConfig{
			JWTSecret: "dev-secret-nao-usar-em-producao",
			Issuer:    "auto-socorro-apoio",
			Audience:  "dashboard",
			TTLHours:  24,
		},
		Geo: GeoConfig{},
		CORS: CORSConfig{
			AllowOrigins: "http://localhost:5173",
		},
		Log: LogConfig{
			Backend: "logrus",
			Level:   "debug",
			Format:  "text",
			Output:  "stdout",
			Path:    "logs/app.log",
		},
	}
}
