// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for local .env files:
//
//   - Outside AWS Lambda the .env file in the working directory is read once per process.
//     Inside Lambda configuration comes from the function environment only.
//   - Each configuration type is parsed once and cached, so packages can call Load freely.
//   - WithPrefix lets one struct type serve several components.
//
// # Usage
//
//	type Config struct {
//		Bucket string        `env:"S3_BUCKET" envDefault:"deck-backend-demo"`
//		TTL    time.Duration `env:"PRESIGN_TTL" envDefault:"1h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be checked with errors.Is.
package config
