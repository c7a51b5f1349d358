// Package config loads the notification subsystem's configuration from
// environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process, then any annotated struct is
// populated via env tags. The package ships typed structs for each concern
// (APIConfig, PushConfig, AuditConfig) so callers wire only what they use.
//
// # Usage
//
//	var api config.APIConfig
//	config.MustLoad(&api)
//
//	var push config.PushConfig
//	if err := config.Load(&push); err != nil {
//		return err
//	}
//
// Sentinel errors can be compared with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
