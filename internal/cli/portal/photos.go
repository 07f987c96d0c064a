package portal

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dbelyaev-dev/cloudpix/internal/cli"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

func formatSize(bytes int64) string {
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

func (a *App) ListPhotos(ctx context.Context) error {
	photos, err := a.photos.Photos(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, p := range photos {
		printlnFn(fmt.Sprintf("[%d] %-30s %10s  %s",
			p.ID, p.OriginalFilename, formatSize(p.FileSizeBytes),
			p.UploadedAt.Format("2006-01-02 15:04")))
	}
	printlnFn(fmt.Sprintf("%d photo(s)", len(photos)))
	return nil
}

// ShowPhoto prints one photo's details including a fresh, short-lived
// download link.
func (a *App) ShowPhoto(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Photo id", 0, os.Stdout)
	if err != nil {
		return err
	}

	photo, err := a.photos.Photo(ctx, id)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("[%d] %s (%s, %s)", photo.ID, photo.OriginalFilename,
		photo.ContentType, formatSize(photo.FileSizeBytes)))
	printlnFn("uploaded:", photo.UploadedAt.Format("2006-01-02 15:04:05"))
	if photo.DownloadURL != "" {
		printlnFn("download:", photo.DownloadURL)
	}
	return nil
}

// contentTypeFor resolves the MIME type from the file extension, falling back
// to content sniffing for files without a recognized one.
func contentTypeFor(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// Upload reads a local file and runs the full upload flow.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := readFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	ticket, err := a.photos.Upload(ctx, filepath.Base(path), contentTypeFor(path, data), data)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded %s (photo id %d)", filepath.Base(path), ticket.PhotoID))
	return nil
}

func (a *App) DeletePhoto(ctx context.Context) error {
	id, err := cli.GetInt(a.reader, "Photo id", 0, os.Stdout)
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(a.reader, fmt.Sprintf("Delete photo %d?", id), "delete", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.photos.Delete(ctx, id); err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) ShowStorage(ctx context.Context) error {
	storage, err := a.photos.Storage(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("Used %.1f MB of %d MB (%.1f%%), %d photo(s)",
		storage.StorageUsedMB, storage.StorageLimitMB,
		storage.StoragePercentage, storage.PhotoCount))
	printlnFn("Remaining:", formatSize(storage.RemainingBytes()))
	return nil
}
