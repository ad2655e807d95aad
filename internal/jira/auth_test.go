package jira_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/tim/internal/jira"
	"github.com/Tiliavir/tim/internal/prompt"
)

func TestConnectFromCredentialFile(t *testing.T) {
	_, srv := newFakeTracker(t)
	path := filepath.Join(t.TempDir(), "creds")
	require.NoError(t, os.WriteFile(path, []byte(srv.URL+"\nme\nsecret\nPROJ\n"), 0o600))

	p := &prompt.Scripted{}
	_, creds, err := jira.Connect(context.Background(), jira.ConnectOptions{
		CredentialsFile: path, Prompter: p, Out: &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, "PROJ", creds.Prefix)
	assert.Empty(t, p.Asked, "credential file must short-circuit prompting")
}

func TestConnectRetryWithFreshCredentials(t *testing.T) {
	_, srv := newFakeTracker(t)
	p := &prompt.Scripted{Answers: []string{
		srv.URL, "me", "wrong", "PROJ",
		"y",
		srv.URL, "me", "secret", "PROJ",
	}}
	out := &bytes.Buffer{}
	_, creds, err := jira.Connect(context.Background(), jira.ConnectOptions{
		CredentialsFile: filepath.Join(t.TempDir(), "missing"), Prompter: p, Out: out,
	})
	require.NoError(t, err)
	assert.Equal(t, "secret", creds.Password)
	assert.Contains(t, out.String(), "Could not connect")
}

func TestConnectAbort(t *testing.T) {
	_, srv := newFakeTracker(t)
	p := &prompt.Scripted{Answers: []string{srv.URL, "me", "wrong", "PROJ", "n"}}
	_, _, err := jira.Connect(context.Background(), jira.ConnectOptions{
		CredentialsFile: filepath.Join(t.TempDir(), "missing"), Prompter: p, Out: &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, jira.ErrAborted)
}

func TestConnectGivesUpAfterMaxAttempts(t *testing.T) {
	_, srv := newFakeTracker(t)
	bad := []string{srv.URL, "me", "wrong", "PROJ"}
	var answers []string
	answers = append(answers, bad...)
	answers = append(answers, "y")
	answers = append(answers, bad...)
	answers = append(answers, "y")
	answers = append(answers, bad...)
	p := &prompt.Scripted{Answers: answers}

	_, _, err := jira.Connect(context.Background(), jira.ConnectOptions{
		CredentialsFile: filepath.Join(t.TempDir(), "missing"), Prompter: p, Out: &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, jira.ErrAborted)
	assert.Empty(t, p.Answers)
}
