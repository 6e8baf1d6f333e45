// Package gcp resolves Google Cloud credentials shared by the Vertex AI and
// Vision clients.
package gcp

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// ErrNoProject is returned when neither config nor credentials name a project.
var ErrNoProject = errors.New("gcp project id not configured")

// ClientOptions returns the options for Google clients. Inline JSON wins;
// otherwise the clients fall back to Application Default Credentials.
func ClientOptions(ctx context.Context, credentialsJSON string) ([]option.ClientOption, error) {
	if credentialsJSON == "" {
		return nil, nil
	}
	if _, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), cloudPlatformScope); err != nil {
		return nil, fmt.Errorf("parse GOOGLE_CREDENTIALS: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON([]byte(credentialsJSON))}, nil
}

// ResolveProjectID returns configured, or the project of the credentials in use.
func ResolveProjectID(ctx context.Context, configured, credentialsJSON string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	var (
		creds *google.Credentials
		err   error
	)
	if credentialsJSON != "" {
		creds, err = google.CredentialsFromJSON(ctx, []byte(credentialsJSON), cloudPlatformScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, cloudPlatformScope)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get default credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return "", ErrNoProject
	}
	return creds.ProjectID, nil
}
