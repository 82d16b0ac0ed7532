package config

// RedisConfig exposes the connection settings for the durable session store.
type RedisConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
}

type Redis struct{}

var _ RedisConfig = Redis{}

func (Redis) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Redis) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}
