package jira

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/tim/internal/prompt"
)

// Credentials identify the tracker account. Prefix is prepended to issue
// numbers that carry no project key.
type Credentials struct {
	Host     string
	Username string
	Password string
	Prefix   string
}

// CredentialsFilePath returns the default credential file location.
func CredentialsFilePath(base string) string {
	return filepath.Join(base, "jira_credentials")
}

// LoadCredentials reads the four-line credential file: host, username,
// password and issue key prefix.
func LoadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < 4 {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("reading credential file %s: %w", path, err)
	}
	if len(lines) < 4 {
		return Credentials{}, fmt.Errorf("credential file %s: want 4 lines (host, username, password, prefix), got %d", path, len(lines))
	}
	return Credentials{
		Host:     lines[0],
		Username: lines[1],
		Password: lines[2],
		Prefix:   lines[3],
	}, nil
}

// PromptCredentials asks for all four credential fields.
func PromptCredentials(p prompt.Prompter) (Credentials, error) {
	var c Credentials
	fields := []struct {
		label  string
		dst    *string
		hidden bool
	}{
		{"Jira host: ", &c.Host, false},
		{"Username: ", &c.Username, false},
		{"Password: ", &c.Password, true},
		{"Issue key prefix: ", &c.Prefix, false},
	}
	for _, f := range fields {
		ask := p.Ask
		if f.hidden {
			ask = p.Secret
		}
		v, err := ask(f.label)
		if err != nil {
			return Credentials{}, err
		}
		*f.dst = v
	}
	return c, nil
}
