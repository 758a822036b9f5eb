package config

import "github.com/kelseyhightower/envconfig"

// envConfig mirrors the fields that may be supplied via DECAT_* environment
// variables (e.g. DECAT_DATABASE_DSN, DECAT_SECRET_KEY).
type envConfig struct {
	EndpointAddr   string `envconfig:"ENDPOINT_ADDR"`
	DatabaseDSN    string `envconfig:"DATABASE_DSN"`
	SecretKey      string `envconfig:"SECRET_KEY"`
	S3RootUser     string `envconfig:"S3_ROOT_USER"`
	S3RootPassword string `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3Region       string `envconfig:"S3_REGION"`
	S3BaseEndpoint string `envconfig:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays values from the environment onto config. Unset variables
// leave the existing values untouched.
func parseEnv(config *Config) {
	var e envConfig
	if err := envconfig.Process("decat", &e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
}
