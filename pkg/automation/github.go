package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const githubAPIBase = "https://api.github.com"

// GitHubDispatcher triggers workflow_dispatch runs in the automation
// repository that performs browser-driven TM30 submissions.
type GitHubDispatcher struct {
	token      string
	owner      string
	repo       string
	workflow   string
	ref        string
	httpClient *http.Client
}

func NewGitHubDispatcher(token, owner, repo, workflow, ref string) *GitHubDispatcher {
	if ref == "" {
		ref = "main"
	}
	return &GitHubDispatcher{
		token:      token,
		owner:      owner,
		repo:       repo,
		workflow:   workflow,
		ref:        ref,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *GitHubDispatcher) Enabled() bool {
	return d.token != "" && d.owner != "" && d.repo != "" && d.workflow != ""
}

type dispatchPayload struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

// Dispatch fires the workflow with the given inputs. GitHub returns 204 on
// success and no run identifier, so callers correlate via a dispatch_id
// passed through the inputs.
func (d *GitHubDispatcher) Dispatch(ctx context.Context, inputs map[string]string) error {
	if !d.Enabled() {
		return errors.New("automation dispatcher is not configured")
	}

	body, err := json.Marshal(dispatchPayload{Ref: d.ref, Inputs: inputs})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches",
		githubAPIBase, d.owner, d.repo, d.workflow)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("workflow dispatch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("workflow dispatch returned status %d: %s", resp.StatusCode, raw)
	}

	return nil
}
