package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
)

// NewInstallationClient creates a client authenticated as a GitHub App
// installation. Comments posted through it carry the App's bot identity,
// which the publisher's bot-author match already covers.
func NewInstallationClient(appID int64, privateKeyPath string, installationID int64, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub App installation client", "app_id", appID, "installation_id", installationID)

	privateKey, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", privateKeyPath, err)
	}

	transport, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	client := github.NewClient(&http.Client{Transport: transport})
	return NewGitHubClient(client, logger), nil
}
