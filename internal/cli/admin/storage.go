package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/dbelyaev-dev/cloudpix/internal/cli"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/dbelyaev-dev/cloudpix/internal/services"
)

func (a *App) ListCredentials(ctx context.Context) error {
	creds, err := a.admin.Credentials(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, c := range creds {
		scope := "default"
		if !c.IsDefault() {
			scope = fmt.Sprintf("tenant %d", *c.TenantID)
		}
		state := "active"
		if !c.IsActive {
			state = "inactive"
		}
		printlnFn(fmt.Sprintf("[%d] %-10s bucket=%s key=%s %s", c.ID, scope, c.Bucket, c.KeyID, state))
	}
	printlnFn(fmt.Sprintf("%d credential(s)", len(creds)))
	return nil
}

func formatConnectionStatus(status models.ConnectionStatus) string {
	line := status.Status
	if status.Message != "" {
		line += ": " + status.Message
	}
	if status.Status == models.StatusPartial {
		line += fmt.Sprintf(" (bucket=%t list=%t)", status.BucketAccessible, status.ListAccessible)
	}
	if status.ResponseTimeMs != nil {
		line += fmt.Sprintf(" in %.0f ms", *status.ResponseTimeMs)
	}
	if status.ObjectCount != nil {
		line += fmt.Sprintf(", %d objects", *status.ObjectCount)
	}
	return line
}

// TestConnection runs a connection test. An empty credential id tests the
// system default configuration.
func (a *App) TestConnection(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Credential id (empty for default config)",
		services.DefaultCredentialID, os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Testing...")
	status, err := a.admin.TestCredential(ctx, id)
	if err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn(formatConnectionStatus(status))
	return nil
}

func (a *App) ShowStorageConfig(ctx context.Context) error {
	cfg, err := a.admin.StorageConfig(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("key id: ", cfg.KeyID)
	printlnFn("bucket: ", cfg.Bucket)
	if cfg.Endpoint != "" {
		printlnFn("endpoint:", cfg.Endpoint)
	}
	return nil
}

// UpdateStorageConfig replaces the default object-store configuration. The
// secret key is prompted without echo and never shown back.
func (a *App) UpdateStorageConfig(ctx context.Context) error {
	keyID, err := getSimpleText(a.reader, "Application key id", os.Stdout)
	if err != nil {
		return err
	}
	key, err := getPassword(os.Stdout, "Application key")
	if err != nil {
		return err
	}
	bucket, err := getSimpleText(a.reader, "Bucket name", os.Stdout)
	if err != nil {
		return err
	}
	endpoint, err := getSimpleText(a.reader, "Endpoint (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	cfg := models.StorageConfig{KeyID: keyID, Key: key, Bucket: bucket, Endpoint: endpoint}
	if err := a.admin.UpdateStorageConfig(ctx, cfg); err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Storage configuration updated. Run 'test' to verify connectivity.")
	return nil
}
