// Package ghcli wraps the gh CLI for the repository provisioning the
// release workflow needs: resolving the current repo and setting
// Actions variables and secrets.
package ghcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client shells out to the gh CLI.
type Client struct {
	GhPath  string
	Verbose bool
}

// run executes gh with args. GITHUB_TOKEN is stripped from the
// environment so gh uses its own stored credentials.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[gh] running: %s %s\n", c.GhPath, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, c.GhPath, args...)
	env := make([]string, 0, len(os.Environ()))
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GITHUB_TOKEN=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("gh command failed: %w\nstderr: %s", err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Validate checks that the gh CLI can be invoked.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := c.run(ctx, "--version"); err != nil {
		return fmt.Errorf("gh CLI not found at %q: %w", c.GhPath, err)
	}
	return nil
}

// RepoInfo resolves the current repository's owner and name.
func (c *Client) RepoInfo(ctx context.Context) (owner, name string, err error) {
	out, err := c.run(ctx, "repo", "view", "--json", "owner,name")
	if err != nil {
		return "", "", fmt.Errorf("not in a GitHub repository or gh not authenticated: %w", err)
	}

	var info struct {
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return "", "", fmt.Errorf("parsing gh repo view output: %w", err)
	}
	return info.Owner.Login, info.Name, nil
}

// ListVariables returns the repository's Actions variables.
func (c *Client) ListVariables(ctx context.Context) (map[string]string, error) {
	out, err := c.run(ctx, "variable", "list", "--json", "name,value")
	if err != nil {
		return nil, err
	}
	var entries []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		return nil, fmt.Errorf("parsing gh variable list output: %w", err)
	}
	vars := make(map[string]string, len(entries))
	for _, e := range entries {
		vars[e.Name] = e.Value
	}
	return vars, nil
}

// ListSecrets returns the names of the repository's Actions secrets.
// Secret values are never readable through gh.
func (c *Client) ListSecrets(ctx context.Context) (map[string]bool, error) {
	out, err := c.run(ctx, "secret", "list", "--json", "name")
	if err != nil {
		return nil, err
	}
	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		return nil, fmt.Errorf("parsing gh secret list output: %w", err)
	}
	secrets := make(map[string]bool, len(entries))
	for _, e := range entries {
		secrets[e.Name] = true
	}
	return secrets, nil
}

// SetVariable sets a repository Actions variable.
func (c *Client) SetVariable(ctx context.Context, name, value string) error {
	_, err := c.run(ctx, "variable", "set", name, "--body", value)
	return err
}

// SetSecret sets a repository Actions secret.
func (c *Client) SetSecret(ctx context.Context, name, value string) error {
	_, err := c.run(ctx, "secret", "set", name, "--body", value)
	return err
}
