package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Tiliavir/tim/internal/prompt"
)

// maxLoginAttempts bounds the interactive retry loop in Connect.
const maxLoginAttempts = 3

// ErrAborted is returned when the user gives up on connecting.
var ErrAborted = errors.New("sync aborted")

// ConnectOptions configure Connect.
type ConnectOptions struct {
	// CredentialsFile is read first; when it is missing the user is asked.
	CredentialsFile string
	// Token, when set, is sent as a bearer token instead of opening a session.
	Token    string
	Prompter prompt.Prompter
	Out      io.Writer
}

// Connect returns a verified client. Credentials come from the credential
// file or from the user. On failure the user may retry with new credentials
// a bounded number of times; declining returns ErrAborted.
func Connect(ctx context.Context, opts ConnectOptions) (*Client, Credentials, error) {
	creds, err := LoadCredentials(opts.CredentialsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(opts.Out, "Warning: %v\n", err)
		}
		creds, err = PromptCredentials(opts.Prompter)
		if err != nil {
			return nil, Credentials{}, err
		}
	}

	for attempt := 1; ; attempt++ {
		client, err := open(ctx, creds, opts.Token)
		if err == nil {
			return client, creds, nil
		}
		fmt.Fprintf(opts.Out, "Could not connect to %s: %v\n", creds.Host, err)
		if attempt >= maxLoginAttempts {
			return nil, creds, fmt.Errorf("%w after %d attempts", ErrAborted, attempt)
		}
		retry, err := opts.Prompter.Confirm("Retry with different credentials?")
		if err != nil {
			return nil, creds, err
		}
		if !retry {
			return nil, creds, ErrAborted
		}
		if creds, err = PromptCredentials(opts.Prompter); err != nil {
			return nil, creds, err
		}
	}
}

func open(ctx context.Context, creds Credentials, token string) (*Client, error) {
	client, err := NewClient(ctx, creds, token)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	if err := client.Verify(ctx); err != nil {
		return nil, err
	}
	return client, nil
}
