package model

// Secret is a named credential record tagged with the place it came from.
type Secret struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Name       string `json:"name" yaml:"name"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Source     Source `json:"source" yaml:"source"`
}

// WithIdentifier returns a copy of the secret carrying id.
func (s Secret) WithIdentifier(id string) Secret {
	s.Identifier = id
	return s
}
