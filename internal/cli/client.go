package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/me/patrol/pkg/model"
)

// Client is an HTTP client for the patrol API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a patrol API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// do performs an HTTP request and returns the raw response body. The
// job endpoints carry their outcome in the body's success flag, so a
// non-2xx status alone is not treated as a transport error.
func (c *Client) do(method, path string) ([]byte, error) {
	url := c.BaseURL + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.Logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "body", string(respBody))
	return respBody, nil
}

// doStatus performs a mutation and decodes the {success, message}
// envelope, turning success=false into an error carrying the server's
// message.
func (c *Client) doStatus(method, path string) (*model.StatusResponse, error) {
	respBody, err := c.do(method, path)
	if err != nil {
		return nil, err
	}

	var sr model.StatusResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("parse response: %w\nbody: %s", err, string(respBody))
	}
	if !sr.Success {
		return &sr, errors.New(sr.Message)
	}
	return &sr, nil
}

// ListJobs fetches all jobs.
func (c *Client) ListJobs() (*model.JobsResponse, error) {
	respBody, err := c.do("GET", "/jobs")
	if err != nil {
		return nil, err
	}

	var jr model.JobsResponse
	if err := json.Unmarshal(respBody, &jr); err != nil {
		return nil, fmt.Errorf("parse response: %w\nbody: %s", err, string(respBody))
	}
	if !jr.Success {
		return &jr, errors.New(jr.Message)
	}
	return &jr, nil
}

// StartJob resumes a paused job.
func (c *Client) StartJob(id string) (*model.StatusResponse, error) {
	return c.doStatus("POST", "/jobs/"+id+"/start")
}

// PauseJob suspends a job.
func (c *Client) PauseJob(id string) (*model.StatusResponse, error) {
	return c.doStatus("POST", "/jobs/"+id+"/pause")
}

// UpdateJob changes a job's firing interval in minutes.
func (c *Client) UpdateJob(id string, minutes int) (*model.StatusResponse, error) {
	return c.doStatus("PUT", "/jobs/"+id+"?time_interval="+strconv.Itoa(minutes))
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(id string) (*model.StatusResponse, error) {
	return c.doStatus("DELETE", "/jobs/"+id)
}
