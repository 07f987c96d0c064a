package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/cli"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

func formatTenant(t models.Tenant) string {
	state := "active"
	if !t.IsActive {
		state = "inactive"
	}
	return fmt.Sprintf("[%d] %-20s %-20s %8.1f/%d MB  %s",
		t.ID, t.Subdomain, t.Name,
		float64(t.StorageUsedBytes)/(1024*1024), t.StorageLimitMB, state)
}

func (a *App) ListTenants(ctx context.Context) error {
	tenants, err := a.admin.Tenants(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}
	for _, t := range tenants {
		printlnFn(formatTenant(t))
	}
	printlnFn(fmt.Sprintf("%d tenant(s)", len(tenants)))
	return nil
}

// CreateTenant collects the new-tenant form and submits it. The generated
// password is shown exactly once; it is not retrievable afterwards.
func (a *App) CreateTenant(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Tenant name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Owner email", os.Stdout)
	if err != nil {
		return err
	}
	subdomain, err := getSimpleText(a.reader, "Subdomain", os.Stdout)
	if err != nil {
		return err
	}
	limit, err := cli.GetInt(a.reader, "Storage limit, MB (empty for 1024)", 1024, os.Stdout)
	if err != nil {
		return err
	}
	days, err := cli.GetInt(a.reader, "Expires in days (empty for 365)", 365, os.Stdout)
	if err != nil {
		return err
	}

	tenant, err := a.admin.CreateTenant(ctx, api.TenantCreateRequest{
		Name:           name,
		Email:          email,
		Subdomain:      subdomain,
		StorageLimitMB: limit,
		ExpiresInDays:  days,
	})
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Created tenant", tenant.Subdomain, "with id", tenant.ID)
	if tenant.Password != "" {
		printlnFn("Generated password (shown only once):", tenant.Password)
	}
	return nil
}

func (a *App) ShowTenant(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Tenant id", 0, os.Stdout)
	if err != nil {
		return err
	}

	details, err := a.admin.TenantDetails(ctx, id)
	if err != nil {
		a.reportErr(err)
		return err
	}
	stats, err := a.admin.TenantStats(ctx, id)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(formatTenant(details.Tenant))
	printlnFn(fmt.Sprintf("  email: %s  users: %d  photos: %d",
		details.Email, details.UserCount, details.PhotoCount))
	if details.DNSRecord != "" {
		printlnFn("  dns:", details.DNSRecord)
	}
	if details.Bucket != "" {
		printlnFn("  bucket:", details.Bucket)
	}
	printlnFn(fmt.Sprintf("  storage: %.1f MB used of %d MB (%.1f%%)",
		stats.StorageUsedMB, stats.StorageLimitMB, stats.StoragePercentage))
	return nil
}

// UpdateTenant prompts for new values; an empty answer leaves the field
// unchanged.
func (a *App) UpdateTenant(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Tenant id", 0, os.Stdout)
	if err != nil {
		return err
	}

	var req api.TenantUpdateRequest
	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		req.Email = &email
	}
	active, err := getSimpleText(a.reader, "Active? y/n (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if active != "" {
		v := active == "y" || active == "yes"
		req.IsActive = &v
	}

	tenant, err := a.admin.UpdateTenant(ctx, id, req)
	if err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Updated:", formatTenant(tenant))
	return nil
}

func (a *App) SetStorageLimit(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Tenant id", 0, os.Stdout)
	if err != nil {
		return err
	}
	limit, err := cli.GetInt(a.reader, "New storage limit, MB", 0, os.Stdout)
	if err != nil {
		return err
	}

	tenant, err := a.admin.UpdateStorageLimit(ctx, id, limit, nil)
	if err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn(fmt.Sprintf("Storage limit for %s is now %d MB", tenant.Subdomain, tenant.StorageLimitMB))
	return nil
}

// DeleteTenant removes a tenant and everything it owns. The operation is
// irreversible, so the user must retype the tenant's subdomain to confirm.
func (a *App) DeleteTenant(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Tenant id", 0, os.Stdout)
	if err != nil {
		return err
	}

	details, err := a.admin.TenantDetails(ctx, id)
	if err != nil {
		a.reportErr(err)
		return err
	}

	ok, err := cli.Confirm(a.reader,
		fmt.Sprintf("Delete tenant %q with %d photo(s) and %d user(s)? This cannot be undone.",
			details.Subdomain, details.PhotoCount, details.UserCount),
		details.Subdomain, os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.admin.DeleteTenant(ctx, id); err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Deleted tenant", details.Subdomain)
	return nil
}
