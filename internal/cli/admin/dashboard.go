package admin

import (
	"context"
	"fmt"
	"sort"
)

func (a *App) ShowStats(ctx context.Context) error {
	stats, err := a.admin.Stats(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("Tenants: %d (%d active)   Users: %d   Photos: %d",
		stats.TotalTenants, stats.ActiveTenants, stats.TotalUsers, stats.TotalPhotos))
	printlnFn(fmt.Sprintf("Storage: %.1f MB tracked, %.1f MB in bucket (%d objects)",
		stats.TotalStorageUsedMB, stats.BucketStorageMB, stats.BucketObjects))
	if stats.RegisteredClients > 0 {
		printlnFn(fmt.Sprintf("Registered clients: %d", stats.RegisteredClients))
	}
	for _, t := range stats.Tenants {
		printlnFn(fmt.Sprintf("  [%d] %-20s %8.1f/%d MB (%.1f%%)  photos: %d",
			t.TenantID, t.Subdomain, t.StorageUsedMB, t.StorageLimitMB,
			t.StoragePercentage, t.PhotoCount))
	}
	return nil
}

func (a *App) ShowHealth(ctx context.Context) error {
	report, err := a.admin.Health(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	// map order is random, keep the output stable
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := report[name]
		line := fmt.Sprintf("%-12s %s", name, c.Status)
		if c.Message != "" {
			line += "  " + c.Message
		}
		printlnFn(line)
	}
	return nil
}
