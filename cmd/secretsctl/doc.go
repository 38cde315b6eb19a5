// Command secretsctl serves an in-memory secrets and projects API.
//
// Secrets are named credentials tagged with a source. Projects group secrets
// by reference, so one secret can belong to any number of projects.
//
// # Quick Start
//
//	# Optionally prepare the audit database
//	export AUDIT_DATABASE_URL=postgres://localhost/secrets_audit?sslmode=disable
//	secretsctl db migrate
//
//	# Start the server
//	secretsctl server
//
//	# In another shell
//	secretsctl wait
//	secretsctl export -o yaml
//
// # Environment Variables
//
//   - SECRETS_CONFIG_PATH: Directory holding secrets.yml (default: /etc/secrets-api/config)
//   - SECRETS_BIND_ADDRESS, SECRETS_PORT: Listen address
//   - SECRETS_LOG_LEVEL, SECRETS_LOG_FORMAT: Logging (debug, info, warn, error; text or json)
//   - SECRETS_AUDIT_ENABLED, SECRETS_METRICS_ENABLED: Feature switches
//   - AUDIT_DATABASE_URL: PostgreSQL connection string for persisted audit messages
package main
