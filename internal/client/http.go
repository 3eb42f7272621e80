// Package client implements the HTTP client for the pufsimd API, used
// by the CLI phase commands.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pufsim/internal/domain"
)

// HTTP talks to a pufsimd instance.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the given base URL.
func NewHTTP(base string) *HTTP { return &HTTP{Base: base, HTTP: http.DefaultClient} }

// CreateSession registers a new session and returns its id.
func (c *HTTP) CreateSession(deviceID, pufType string, numCRPs int) (string, error) {
	in := struct {
		DeviceID string `json:"device_id"`
		PUFType  string `json:"puf_type"`
		NumCRPs  int    `json:"num_crps"`
	}{DeviceID: deviceID, PUFType: pufType, NumCRPs: numCRPs}
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := c.post("/sessions", in, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// Enroll runs the enrollment phase.
func (c *HTTP) Enroll(id string) (domain.EnrollResult, error) {
	var out domain.EnrollResult
	err := c.post(c.phasePath(id, "enroll"), nil, &out)
	return out, err
}

// Authenticate runs one challenge-response round.
func (c *HTTP) Authenticate(id string) (domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.post(c.phasePath(id, "authenticate"), nil, &out)
	return out, err
}

// ExchangeKeys runs the Diffie-Hellman exchange.
func (c *HTTP) ExchangeKeys(id string) (domain.KeyExchangeResult, error) {
	var out domain.KeyExchangeResult
	err := c.post(c.phasePath(id, "exchange"), nil, &out)
	return out, err
}

// Provision runs the credential round trip.
func (c *HTTP) Provision(id string) (domain.ProvisionResult, error) {
	var out domain.ProvisionResult
	err := c.post(c.phasePath(id, "provision"), nil, &out)
	return out, err
}

// Operate runs the operational exchange.
func (c *HTTP) Operate(id string) (domain.OperateResult, error) {
	var out domain.OperateResult
	err := c.post(c.phasePath(id, "operate"), nil, &out)
	return out, err
}

// Reset clears a session's protocol progress.
func (c *HTTP) Reset(id string) error {
	return c.post(c.phasePath(id, "reset"), nil, nil)
}

// Delete removes a session.
func (c *HTTP) Delete(id string) error {
	req, err := http.NewRequest(http.MethodDelete, c.Base+"/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Credentials fetches the provisioned credential snapshot.
func (c *HTTP) Credentials(id string) (domain.Credentials, error) {
	var out domain.Credentials
	err := c.getJSON("/sessions/"+url.PathEscape(id)+"/credentials", &out)
	return out, err
}

// Summary fetches the session's external view.
func (c *HTTP) Summary(id string) (domain.Summary, error) {
	var out domain.Summary
	err := c.getJSON("/sessions/"+url.PathEscape(id), &out)
	return out, err
}

// List fetches summaries of all sessions.
func (c *HTTP) List() ([]domain.Summary, error) {
	var out []domain.Summary
	err := c.getJSON("/sessions", &out)
	return out, err
}

func (c *HTTP) phasePath(id, phase string) string {
	return "/sessions/" + url.PathEscape(id) + "/" + phase
}

func (c *HTTP) post(path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if in != nil {
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTP) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTP) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("pufsimd %s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("pufsimd %s %s: %s", req.Method, req.URL.Path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
