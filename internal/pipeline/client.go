package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client submits pipeline definitions to the orchestration service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Execution identifies one pipeline run accepted by the orchestrator.
type Execution struct {
	ID       uuid.UUID `json:"id"`
	Pipeline string    `json:"pipeline"`
}

// Upsert creates or updates the pipeline definition on the orchestrator.
func (c *Client) Upsert(ctx context.Context, p *Pipeline) error {
	def, err := p.Definition()
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/pipelines/%s", c.baseURL, p.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(def))
	if err != nil {
		return fmt.Errorf("create upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithFields(log.Fields{
		"pipeline": p.Name,
		"url":      url,
	}).Debug("upserting pipeline definition")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upsert pipeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upsert pipeline: %s: %s", resp.Status, body)
	}
	return nil
}

// Start begins an execution of a previously upserted pipeline, optionally
// overriding parameters. The execution ID is issued client-side and sent as
// an idempotency key; the orchestrator may echo its own in the response.
func (c *Client) Start(ctx context.Context, name string, params map[string]string) (*Execution, error) {
	payload, err := json.Marshal(map[string]any{"parameters": params})
	if err != nil {
		return nil, fmt.Errorf("marshal start request: %w", err)
	}

	exec := &Execution{ID: uuid.New(), Pipeline: name}

	url := fmt.Sprintf("%s/pipelines/%s/executions", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create start request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", exec.ID.String())

	log.WithFields(log.Fields{
		"pipeline":  name,
		"execution": exec.ID,
		"url":       url,
	}).Debug("starting pipeline execution")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start pipeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("start pipeline: %s: %s", resp.Status, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(exec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode execution response: %w", err)
	}
	return exec, nil
}
