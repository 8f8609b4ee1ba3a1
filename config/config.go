// Package config loads and validates the service configuration from a YAML
// file merged with environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."
	defaultEnv  = "local"
)

// Config is the root configuration consumed by the composition root.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Token *TokenConfig `json:"token" yaml:"token"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	FaceEncoder *FaceEncoderConfig `json:"faceEncoder" yaml:"faceEncoder"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// Log defines logger output options.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// MongoConfig defines the document store connection and resilience settings.
type MongoConfig struct {
	// URI is the connection string. Required; startup fails without it.
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`

	// MaxRetries bounds the connection attempt sequence of one connect call.
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`
	// RetryDelay is the base delay; attempt n sleeps RetryDelay * n (linear).
	RetryDelay time.Duration `json:"retryDelay" yaml:"retryDelay"`

	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
	SocketTimeout  time.Duration `json:"socketTimeout" yaml:"socketTimeout"`

	// HealthCheckInterval throttles liveness probes: a probe is skipped when
	// the last successful one is younger than this.
	HealthCheckInterval time.Duration `json:"healthCheckInterval" yaml:"healthCheckInterval"`

	MaxPoolSize     uint64        `json:"maxPoolSize" yaml:"maxPoolSize"`
	MinPoolSize     uint64        `json:"minPoolSize" yaml:"minPoolSize"`
	MaxConnIdleTime time.Duration `json:"maxConnIdleTime" yaml:"maxConnIdleTime"`
}

// TokenConfig defines session token issuance settings.
type TokenConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// GoogleOAuthConfig defines the federated identity verification settings.
// Only the client ID is needed for ID token verification.
type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

// FaceEncoderConfig defines the biometric extraction sidecar settings.
type FaceEncoderConfig struct {
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	// Tolerance is the embedding distance threshold for a match decision.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// AuthConfig defines authentication pipeline settings.
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// LoginDeadline is the end-to-end budget for one login attempt, so a hung
	// extraction call cannot wedge a connection slot forever.
	LoginDeadline time.Duration `json:"loginDeadline" yaml:"loginDeadline"`
}

// New loads the configuration for the environment named by APP_ENV
// (default "local") and validates it.
func New() (*Config, error) {
	currEnv := os.Getenv("APP_ENV")
	if currEnv == "" {
		currEnv = defaultEnv
	}

	cfg, err := LoadWithEnv[Config](currEnv, "config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithEnv loads <env>.yaml through koanf, then overlays environment
// variables (MONGO_URI -> mongo.uri). The YAML file is optional so that
// fully env-driven deployments work.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	searchPaths = append(searchPaths, configPath...)

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := koanfInstance.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}

		break
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// MONGO_HEALTH_CHECK_INTERVAL -> mongo.healthcheckinterval;
			// struct matching below is case-insensitive.
			key := strings.ToLower(strings.ReplaceAll(k, "__", "."))
			key = strings.ReplaceAll(key, "_", ".")

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = "frvttae"
	}
	if cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = "info"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}

	if cfg.Mongo == nil {
		cfg.Mongo = &MongoConfig{}
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "face_login_db"
	}
	if cfg.Mongo.MaxRetries == 0 {
		cfg.Mongo.MaxRetries = 5
	}
	if cfg.Mongo.RetryDelay == 0 {
		cfg.Mongo.RetryDelay = 2 * time.Second
	}
	if cfg.Mongo.ConnectTimeout == 0 {
		cfg.Mongo.ConnectTimeout = 5 * time.Second
	}
	if cfg.Mongo.SocketTimeout == 0 {
		cfg.Mongo.SocketTimeout = 10 * time.Second
	}
	if cfg.Mongo.HealthCheckInterval == 0 {
		cfg.Mongo.HealthCheckInterval = 60 * time.Second
	}
	if cfg.Mongo.MaxPoolSize == 0 {
		cfg.Mongo.MaxPoolSize = 10
	}
	if cfg.Mongo.MinPoolSize == 0 {
		cfg.Mongo.MinPoolSize = 1
	}
	if cfg.Mongo.MaxConnIdleTime == 0 {
		cfg.Mongo.MaxConnIdleTime = 30 * time.Second
	}

	if cfg.Token == nil {
		cfg.Token = &TokenConfig{}
	}
	if cfg.Token.TTL == 0 {
		cfg.Token.TTL = 30 * time.Minute
	}

	if cfg.FaceEncoder == nil {
		cfg.FaceEncoder = &FaceEncoderConfig{}
	}
	if cfg.FaceEncoder.Timeout == 0 {
		cfg.FaceEncoder.Timeout = 15 * time.Second
	}
	if cfg.FaceEncoder.Tolerance == 0 {
		cfg.FaceEncoder.Tolerance = 0.6
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.LoginDeadline == 0 {
		cfg.Auth.LoginDeadline = 30 * time.Second
	}
}

func (cfg *Config) validate() error {
	if cfg.Mongo == nil || cfg.Mongo.URI == "" {
		return errors.New("mongo.uri is not configured")
	}
	if cfg.SecretKey.Access == "" {
		return errors.New("secretKey.access is not configured")
	}

	return nil
}
