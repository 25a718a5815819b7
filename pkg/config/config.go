package config

import "os"

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	RedisAddr       string
	RedisPassword   string
	AWSBucketName   string
	GoogleAudience  string
	OperatorEmail   string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8000"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		AWSBucketName:   getEnv("AWS_BUCKET_NAME", ""),
		GoogleAudience:  getEnv("GOOGLE_CLIENT_ID", ""),
		OperatorEmail:   getEnv("OPERATOR_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
