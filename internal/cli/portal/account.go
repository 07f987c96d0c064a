package portal

import (
	"context"
	"fmt"
)

func (a *App) ShowAccount(ctx context.Context) error {
	info, err := a.photos.Info(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", info.Name, info.Subdomain))
	if info.Email != "" {
		printlnFn("email:", info.Email)
	}
	if info.ExpiresAt != nil {
		line := "expires: " + info.ExpiresAt.Format("2006-01-02")
		if info.DaysRemaining != nil {
			line += fmt.Sprintf(" (%d day(s) remaining)", *info.DaysRemaining)
		}
		printlnFn(line)
	}
	return nil
}

func (a *App) ShowUsage(ctx context.Context) error {
	logs, err := a.photos.UsageLogs(ctx, 50)
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, l := range logs {
		line := fmt.Sprintf("%-10s", l.LogType)
		if l.BytesTransferred != nil {
			line += " " + formatSize(*l.BytesTransferred)
		}
		if l.CreatedAt != nil {
			line += "  " + l.CreatedAt.Format("2006-01-02 15:04:05")
		}
		printlnFn(line)
	}
	return nil
}
