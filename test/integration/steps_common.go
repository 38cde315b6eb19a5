package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/secrets-api/pkg/model"
)

// placeholder matches {secret:name} and {project:name} in request paths
var placeholder = regexp.MustCompile(`\{(secret|project):([^}]+)\}`)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	server       *httptest.Server
	response     *http.Response
	responseBody []byte
	secrets      map[string]string // name -> identifier
	projects     map[string]string // name -> identifier
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:       tc,
		secrets:  make(map[string]string),
		projects: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.server != nil {
			s.server.Close()
		}
		return ctx, err
	})

	// Background steps
	sc.Step(`^a secrets server is running$`, s.aSecretsServerIsRunning)

	// Secret steps
	sc.Step(`^I create a secret "([^"]*)" with value "([^"]*)" from "([^"]*)"$`, s.iCreateASecret)
	sc.Step(`^I delete the secret "([^"]*)"$`, s.iDeleteTheSecret)
	sc.Step(`^the secret "([^"]*)" should exist$`, s.theSecretShouldExist)
	sc.Step(`^the secret "([^"]*)" should not exist$`, s.theSecretShouldNotExist)
	sc.Step(`^the secret "([^"]*)" should have value "([^"]*)"$`, s.theSecretShouldHaveValue)

	// Project steps
	sc.Step(`^I create a project "([^"]*)"$`, s.iCreateAProject)
	sc.Step(`^I delete the project "([^"]*)"$`, s.iDeleteTheProject)
	sc.Step(`^I attach the secret "([^"]*)" to the project "([^"]*)"$`, s.iAttachTheSecret)
	sc.Step(`^I detach the secret "([^"]*)" from the project "([^"]*)"$`, s.iDetachTheSecret)
	sc.Step(`^I purge the secret "([^"]*)" from the project "([^"]*)"$`, s.iPurgeTheSecret)
	sc.Step(`^I create a secret "([^"]*)" in the project "([^"]*)"$`, s.iCreateASecretInTheProject)
	sc.Step(`^the project "([^"]*)" should list secrets "([^"]*)"$`, s.theProjectShouldListSecrets)

	// Raw request steps
	sc.Step(`^I send a (GET|POST|DELETE) request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the error message should be "([^"]*)"$`, s.theErrorMessageShouldBe)

	// Audit steps
	sc.Step(`^an audit message "([^"]*)" containing "([^"]*)" should be recorded$`, s.anAuditMessageShouldBeRecorded)
}

// Background steps

func (s *StepsContext) aSecretsServerIsRunning() error {
	s.server = s.tc.StartServer()
	return nil
}

// Request helpers

func (s *StepsContext) expand(path string) string {
	return placeholder.ReplaceAllStringFunc(path, func(m string) string {
		parts := placeholder.FindStringSubmatch(m)
		ids := s.secrets
		if parts[1] == "project" {
			ids = s.projects
		}
		if id, ok := ids[parts[2]]; ok {
			return id
		}
		return parts[2]
	})
}

func (s *StepsContext) doRequest(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+s.expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) doJSON(method, path string, payload interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return err
		}
	}
	if err := s.doRequest(method, path, body); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: expected 200, got %d: %s", method, path, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) decodeProject() (model.Project, error) {
	var project model.Project
	err := json.Unmarshal(s.responseBody, &project)
	return project, err
}

// Secret steps

func (s *StepsContext) iCreateASecret(name, value, source string) error {
	if err := s.doJSON("POST", "/secrets", map[string]string{"name": name, "value": value, "source": source}); err != nil {
		return err
	}
	var secret model.Secret
	if err := json.Unmarshal(s.responseBody, &secret); err != nil {
		return err
	}
	s.secrets[name] = secret.Identifier
	return nil
}

func (s *StepsContext) iDeleteTheSecret(name string) error {
	return s.doJSON("DELETE", "/secrets/{secret:"+name+"}", nil)
}

func (s *StepsContext) theSecretShouldExist(name string) error {
	return s.doJSON("GET", "/secrets/{secret:"+name+"}", nil)
}

func (s *StepsContext) theSecretShouldNotExist(name string) error {
	if err := s.doRequest("GET", "/secrets/{secret:"+name+"}", nil); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusNotFound {
		return fmt.Errorf("expected secret %q to be gone, got status %d", name, s.response.StatusCode)
	}
	return nil
}

func (s *StepsContext) theSecretShouldHaveValue(name, value string) error {
	if err := s.doJSON("GET", "/secrets/{secret:"+name+"}", nil); err != nil {
		return err
	}
	var secret model.Secret
	if err := json.Unmarshal(s.responseBody, &secret); err != nil {
		return err
	}
	if secret.Value != value {
		return fmt.Errorf("expected value %q, got %q", value, secret.Value)
	}
	return nil
}

// Project steps

func (s *StepsContext) iCreateAProject(name string) error {
	if err := s.doJSON("POST", "/projects", map[string]string{"name": name}); err != nil {
		return err
	}
	project, err := s.decodeProject()
	if err != nil {
		return err
	}
	s.projects[name] = project.Identifier
	return nil
}

func (s *StepsContext) iDeleteTheProject(name string) error {
	return s.doJSON("DELETE", "/projects/{project:"+name+"}", nil)
}

func (s *StepsContext) iAttachTheSecret(secret, project string) error {
	return s.doJSON("POST", "/projects/{project:"+project+"}/secrets/{secret:"+secret+"}", nil)
}

func (s *StepsContext) iDetachTheSecret(secret, project string) error {
	return s.doJSON("DELETE", "/projects/{project:"+project+"}/secrets/{secret:"+secret+"}", nil)
}

func (s *StepsContext) iPurgeTheSecret(secret, project string) error {
	return s.doJSON("DELETE", "/projects/{project:"+project+"}/secrets/{secret:"+secret+"}?purge=true", nil)
}

func (s *StepsContext) iCreateASecretInTheProject(name, project string) error {
	if err := s.doJSON("POST", "/projects/{project:"+project+"}/secrets", map[string]string{"name": name, "source": "OTHER"}); err != nil {
		return err
	}
	updated, err := s.decodeProject()
	if err != nil {
		return err
	}
	if len(updated.Secrets) == 0 {
		return fmt.Errorf("project %q has no secrets after create", project)
	}
	s.secrets[name] = updated.Secrets[len(updated.Secrets)-1]
	return nil
}

func (s *StepsContext) theProjectShouldListSecrets(project, names string) error {
	if err := s.doJSON("GET", "/projects/{project:"+project+"}/secrets", nil); err != nil {
		return err
	}
	var secrets []model.Secret
	if err := json.Unmarshal(s.responseBody, &secrets); err != nil {
		return err
	}

	got := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		got = append(got, secret.Name)
	}
	want := []string{}
	if names != "" {
		want = strings.Split(names, ",")
		for i := range want {
			want[i] = strings.TrimSpace(want[i])
		}
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected secrets %v, got %v", want, got)
	}
	return nil
}

// Raw request steps

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.doRequest(method, path, nil)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.doRequest(method, path, []byte(body.Content))
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), s.expand(text)) {
		return fmt.Errorf("expected response to contain %q, got %s", text, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theErrorMessageShouldBe(message string) error {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not an error body: %s", s.responseBody)
	}
	if body.Error.Message != message {
		return fmt.Errorf("expected error %q, got %q", message, body.Error.Message)
	}
	return nil
}

// Audit steps

func (s *StepsContext) anAuditMessageShouldBeRecorded(msgid, text string) error {
	messages, err := s.tc.AuditStore.Recent(msgid, 200)
	if err != nil {
		return err
	}
	want := s.expand(text)
	for _, m := range messages {
		if strings.Contains(m.Message, want) {
			return nil
		}
	}
	return fmt.Errorf("no %q audit message containing %q", msgid, want)
}
