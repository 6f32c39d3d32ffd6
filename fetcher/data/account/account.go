package accountfetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fortstats/fetcher/requests"
	"fortstats/pkg/logger"
	"fortstats/pkg/messages"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrInvalidArgument is the class of errors raised before any request is issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoUsernames is returned when a batch has nothing to fetch.
	ErrNoUsernames = fmt.Errorf("%w: %s", ErrInvalidArgument, messages.EmptyUsernames)

	// ErrMalformedResponse is returned when a 200 response can't be turned into an Account.
	// It aborts the whole batch.
	ErrMalformedResponse = errors.New("malformed account response")
)

// StatusError is returned when the API answers with anything but 200.
type StatusError struct {
	Username   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.BadStatusCodeMsg, e.StatusCode, e.Username)
}

// TransportError is returned when no response could be received.
type TransportError struct {
	Username string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf(messages.RequestFailedMsg+": %v", e.Username, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AccountFetcher looks up accounts on the accounts API.
type AccountFetcher struct {
	client   *http.Client
	baseURL  string
	reporter logger.Reporter
}

// NewAccountFetcher creates a account fetcher.
// A nil client uses the default HTTP client, a nil reporter logs to standard output.
// A nil *logger.Logger passed as the reporter is kept and drops the diagnostics.
func NewAccountFetcher(baseURL string, client *http.Client, reporter logger.Reporter) *AccountFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if reporter == nil {
		reporter = logger.New(nil)
	}

	return &AccountFetcher{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		reporter: reporter,
	}
}

// GetAccount fetches a single account.
func (a *AccountFetcher) GetAccount(ctx context.Context, username string) (*Account, error) {
	accountURL := a.baseURL + "/" + url.PathEscape(username)

	resp, err := requests.Request(ctx, a.client, accountURL, http.MethodGet)
	if err != nil {
		return nil, &TransportError{Username: username, Err: err}
	}

	defer resp.Body.Close()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		// Drain so the connection goes back to the pool.
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Username: username, StatusCode: resp.StatusCode}
	}

	var body accountResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: "+messages.FailedToParseMsg+": %v", ErrMalformedResponse, username, err)
	}

	// The body must hold a single JSON value.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: "+messages.FailedToParseMsg+": trailing data after the JSON object", ErrMalformedResponse, username)
	}

	// Every field is required, a zero value is only valid when it was sent.
	switch {
	case body.Username == nil:
		return nil, fmt.Errorf("%w: "+messages.MissingFieldMsg, ErrMalformedResponse, username, "username")
	case body.Level == nil:
		return nil, fmt.Errorf("%w: "+messages.MissingFieldMsg, ErrMalformedResponse, username, "level")
	case body.Wins == nil:
		return nil, fmt.Errorf("%w: "+messages.MissingFieldMsg, ErrMalformedResponse, username, "wins")
	}

	return &Account{
		Username: *body.Username,
		Level:    *body.Level,
		Wins:     *body.Wins,
	}, nil
}

// FetchAccounts fetches every username in order, one request at a time.
// Usernames that fail with a bad status or a transport error are reported and skipped,
// a malformed 200 response aborts the batch.
func (a *AccountFetcher) FetchAccounts(ctx context.Context, usernames []string) ([]Account, error) {
	if len(usernames) == 0 {
		return nil, ErrNoUsernames
	}

	accounts := make([]Account, 0, len(usernames))
	for _, username := range usernames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		account, err := a.GetAccount(ctx, username)
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				return nil, err
			}

			a.reporter.Errorf(messages.SkippedAccountMsg, err)
			continue
		}

		accounts = append(accounts, *account)
	}

	return accounts, nil
}
