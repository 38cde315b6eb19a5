package audit

import "fmt"

// Operation names recorded in the action SD element
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationAttach = "attach"
	OperationDetach = "detach"
	OperationPurge  = "purge"
)

var pastTense = map[string]string{
	OperationCreate: "created",
	OperationUpdate: "updated",
	OperationDelete: "deleted",
	OperationAttach: "attached",
	OperationDetach: "detached",
	OperationPurge:  "purged",
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

// describe renders the common "<client> <verb> <what>" message
func describe(clientIP, operation, what string, success bool, errorMessage string) string {
	if success {
		return fmt.Sprintf("%s %s %s", clientIP, pastTense[operation], what)
	}
	msg := fmt.Sprintf("%s tried to %s %s", clientIP, operation, what)
	if errorMessage != "" {
		msg += ": " + errorMessage
	}
	return msg
}

// SecretEvent records a change to a secret
type SecretEvent struct {
	ClientIP     string
	Operation    string
	SecretID     string
	Name         string
	Success      bool
	ErrorMessage string
}

func (e SecretEvent) MessageID() string {
	return "secret"
}

func (e SecretEvent) Message() string {
	what := "secret " + e.SecretID
	if e.SecretID == "" {
		what = "secret"
	}
	if e.Name != "" {
		what += fmt.Sprintf(" (%s)", e.Name)
	}
	return describe(e.ClientIP, e.Operation, what, e.Success, e.ErrorMessage)
}

func (e SecretEvent) Severity() Severity {
	return severity(e.Success)
}

func (e SecretEvent) Facility() int {
	return FacilityAuthPriv
}

func (e SecretEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"secret": e.SecretID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}

// ProjectEvent records a change to a project
type ProjectEvent struct {
	ClientIP     string
	Operation    string
	ProjectID    string
	Name         string
	Success      bool
	ErrorMessage string
}

func (e ProjectEvent) MessageID() string {
	return "project"
}

func (e ProjectEvent) Message() string {
	what := "project " + e.ProjectID
	if e.ProjectID == "" {
		what = "project"
	}
	if e.Name != "" {
		what += fmt.Sprintf(" (%s)", e.Name)
	}
	return describe(e.ClientIP, e.Operation, what, e.Success, e.ErrorMessage)
}

func (e ProjectEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ProjectEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ProjectEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
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
}
