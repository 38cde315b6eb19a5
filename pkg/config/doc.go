// Package config provides configuration management for the secrets API.
//
// Values are resolved in order from built-in defaults, the YAML config
// file and SECRETS_* environment variables, and the source of each
// attribute is tracked for `secretsctl configuration show`.
//
// # Key Configuration Options
//
//   - SECRETS_CONFIG_PATH: directory holding secrets.yml
//   - SECRETS_PORT / SECRETS_BIND_ADDRESS: listen address
//   - SECRETS_LOG_LEVEL / SECRETS_LOG_FORMAT: logging
//   - SECRETS_AUDIT_ENABLED: audit events
//   - SECRETS_CORS_ALLOWED_ORIGINS: comma separated origins
package config
