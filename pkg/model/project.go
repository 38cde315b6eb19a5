package model

// Project groups secrets by reference. Secrets holds secret identifiers in
// the order they were attached.
type Project struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	Name       string   `json:"name" yaml:"name"`
	Secrets    []string `json:"secrets" yaml:"secrets"`
}

// Clone returns a deep copy of the project. A nil secrets sequence becomes
// an empty one.
func (p Project) Clone() Project {
	secrets := make([]string, len(p.Secrets))
	copy(secrets, p.Secrets)
	p.Secrets = secrets
	return p
}

// HasSecret reports whether secretID is referenced by the project.
func (p Project) HasSecret(secretID string) bool {
	for _, id := range p.Secrets {
		if id == secretID {
			return true
		}
	}
	return false
}

// RemoveSecret drops secretID from the project's references and reports
// whether it was present.
func (p *Project) RemoveSecret(secretID string) bool {
	for i, id := range p.Secrets {
		if id == secretID {
			p.Secrets = append(p.Secrets[:i], p.Secrets[i+1:]...)
			return true
		}
	}
	return false
}
