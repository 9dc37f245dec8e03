// Package firebase implements the two persistence backends and the push
// notifier on Firebase: the Realtime Database as the overwrite store,
// Firestore as the document-merge store, and Cloud Messaging for alert push.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp initializes the Firebase app shared by all three adapters.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewApp(ctx context.Context, projectID, databaseURL, credentialsFile string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   projectID,
		DatabaseURL: databaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	return app, nil
}
