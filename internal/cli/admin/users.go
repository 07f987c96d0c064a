package admin

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/cli"
)

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.admin.Users(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, u := range users {
		role := "user"
		switch {
		case u.IsAdmin:
			role = "admin"
		case u.IsTenantAdmin:
			role = "tenant-admin"
		}
		tenant := "-"
		if u.TenantID != nil {
			tenant = strconv.Itoa(*u.TenantID)
		}
		printlnFn(fmt.Sprintf("[%d] %-30s %-12s tenant=%s", u.ID, u.Email, role, tenant))
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(users)))
	return nil
}

// ShowLogs lists recent API requests, optionally filtered by HTTP method.
func (a *App) ShowLogs(ctx context.Context) error {
	method, err := getSimpleText(a.reader, "Filter by method (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	limit, err := cli.GetInt(a.reader, "How many (empty for 50)", 50, os.Stdout)
	if err != nil {
		return err
	}

	logs, err := a.admin.APILogs(ctx, limit, api.APILogFilter{Method: method})
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, l := range logs {
		line := fmt.Sprintf("%-6s %-40s %d", l.Method, l.Path, l.StatusCode)
		if l.DurationMs != nil {
			line += fmt.Sprintf("  %.1f ms", *l.DurationMs)
		}
		if l.CreatedAt != nil {
			line += "  " + l.CreatedAt.Format("2006-01-02 15:04:05")
		}
		printlnFn(line)
	}
	return nil
}
