// Package audit provides audit logging for secrets API operations.
//
// Every state-changing request produces an event that is written in
// RFC5424 syslog format and, when AUDIT_DATABASE_URL is set, persisted to
// the messages table.
//
// # Event Types
//
//   - SecretEvent: secret create, update and delete
//   - ProjectEvent: project create, update and delete
//   - MembershipEvent: secrets attached to, detached from or purged from a project
//
// # Usage
//
//	auditor := audit.New(audit.NewLogger(), store)
//	auditor.Log(audit.SecretEvent{
//	    ClientIP:  ip,
//	    Operation: audit.OperationCreate,
//	    SecretID:  secret.Identifier,
//	    Success:   true,
//	})
package audit
