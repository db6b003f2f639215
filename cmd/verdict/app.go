package main

import (
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/config"
	"github.com/verdicthq/verdict/internal/session"
	"github.com/verdicthq/verdict/internal/vault"
)

// app bundles the long-lived collaborators every command needs. Built once
// per invocation from config; commands pull out what they use.
type app struct {
	cfg    *config.Config
	client *api.Client
	vault  *vault.Vault
	log    session.Logger
}

// newApp wires config, credentials, the API client, the verdict vault,
// and the session logger.
func newApp() (*app, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, tokenSource(),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.RequestTimeout}))

	v, err := vault.New(cfg.Paths.Vault)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}

	var log session.Logger = session.NopLogger{}
	if cfg.Defaults.SessionLog == nil || *cfg.Defaults.SessionLog {
		l, err := session.NewJSONLogger(session.DefaultLogPath(cfg.Paths.Sessions))
		if err != nil {
			return nil, fmt.Errorf("opening session log: %w", err)
		}
		log = l
	}

	return &app{cfg: cfg, client: client, vault: v, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Close() //nolint:errcheck
}

// tokenSource builds credentials from VERDICT_API_TOKEN. A nil source means
// unauthenticated requests; the backend will reject them with a clear error.
func tokenSource() oauth2.TokenSource {
	tok := os.Getenv("VERDICT_API_TOKEN")
	if tok == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
}
