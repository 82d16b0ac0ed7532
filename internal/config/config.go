package config

type Config interface {
	EnvConfig
	AuthConfig
	RedisConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Auth
	Redis
}

func New() Config {
	return mainConfig{}
}
