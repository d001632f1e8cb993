// Package config loads engine configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// .env files feed the process environment, and `env` struct tags map the
// environment onto Go structs with typed defaults.
//
// The usual entry point is Settings, which carries the engine-wide
// defaults (validation mode, debounce and throttle windows, locale):
//
//	var settings config.Settings
//	config.MustLoad(&settings)
//
//	form, err := formkit.New(fields, formkit.WithSettings(settings))
//
// Custom structs work the same way:
//
//	type ServerConfig struct {
//	    Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	var srv ServerConfig
//	if err := config.Load(&srv); err != nil {
//	    log.Fatal(err)
//	}
//
// Load reads the default .env once per process; LoadEnv loads named files
// explicitly for setups with environment-specific overrides. Failures are
// reported through the package sentinels (ErrLoadingEnv, ErrParsingConfig,
// ErrNilPointer) and compare with errors.Is.
package config
