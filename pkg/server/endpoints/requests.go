package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
)

// validationError is answered with 422 Unprocessable Entity
type validationError struct {
	message string
}

func (e validationError) Error() string {
	return e.message
}

// secretRequest is the wire form of a secret in request bodies. Source is
// kept as a string so a missing value can be told apart from the first
// enum constant.
type secretRequest struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Source     string `json:"source"`
}

func (req secretRequest) toModel() (model.Secret, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Secret{}, validationError{"name is required"}
	}
	if req.Source == "" {
		return model.Secret{}, validationError{"source is required"}
	}
	// SourceString also accepts lowercase names; only the canonical spelling is valid.
	source, err := model.SourceString(req.Source)
	if err != nil || source.String() != req.Source {
		return model.Secret{}, validationError{
			fmt.Sprintf("source must be one of %s", strings.Join(model.SourceStrings(), ", ")),
		}
	}

	return model.Secret{
		Identifier: req.Identifier,
		Name:       req.Name,
		Value:      req.Value,
		Source:     source,
	}, nil
}

type projectRequest struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Secrets    []string `json:"secrets"`
}

func (req projectRequest) toModel() (model.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Project{}, validationError{"name is required"}
	}
	for _, id := range req.Secrets {
		if id == "" {
			return model.Project{}, validationError{"secrets must not contain empty identifiers"}
		}
	}

	return model.Project{
		Identifier: req.Identifier,
		Name:       req.Name,
		Secrets:    req.Secrets,
	}, nil
}

// decodeSecret reads and validates a secret body, answering 400 or 422
func decodeSecret(w http.ResponseWriter, r *http.Request) (model.Secret, bool) {
	var req secretRequest
	if !decodeBody(w, r, &req) {
		return model.Secret{}, false
	}
	secret, err := req.toModel()
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return model.Secret{}, false
	}
	return secret, true
}

// decodeProject reads and validates a project body, answering 400 or 422
func decodeProject(w http.ResponseWriter, r *http.Request) (model.Project, bool) {
	var req projectRequest
	if !decodeBody(w, r, &req) {
		return model.Project{}, false
	}
	project, err := req.toModel()
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return model.Project{}, false
	}
	return project, true
}
