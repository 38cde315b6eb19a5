package audit

import "fmt"

// MembershipEvent records a secret being attached to or detached from a
// project, including embedded secrets created, updated or purged through
// the project.
type MembershipEvent struct {
	ClientIP     string
	Operation    string
	ProjectID    string
	SecretID     string
	Success      bool
	ErrorMessage string
}

func (e MembershipEvent) MessageID() string {
	return "membership"
}

func (e MembershipEvent) Message() string {
	preposition := "in"
	switch e.Operation {
	case OperationAttach:
		preposition = "to"
	case OperationDetach, OperationPurge:
		preposition = "from"
	}
	what := fmt.Sprintf("secret %s %s project %s", e.SecretID, preposition, e.ProjectID)
	if e.SecretID == "" {
		what = fmt.Sprintf("secret %s project %s", preposition, e.ProjectID)
	}
	return describe(e.ClientIP, e.Operation, what, e.Success, e.ErrorMessage)
}

func (e MembershipEvent) Severity() Severity {
	return severity(e.Success)
}

func (e MembershipEvent) Facility() int {
	return FacilityAuthPriv
}

func (e MembershipEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"project": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.SecretID != "" {
		sd[SDIDSubject]["secret"] = e.SecretID
	}
	return sd
}
