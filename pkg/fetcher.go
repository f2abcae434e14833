package welearn

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Outcome of a single fetch
type Outcome int

const (
	Skipped Outcome = iota
	Downloaded
	Planned
)

func (o Outcome) String() string {
	switch o {
	case Downloaded:
		return "downloaded"
	case Planned:
		return "planned"
	default:
		return "skipped"
	}
}

// Fetcher downloads files into course folders unless the link cache says
// they were already retrieved.
type Fetcher struct {
	Downloader Downloader
	Cache      *LinkCache
	// Force downloads files even when they are cached
	Force bool
	// DryRun only reports what would be downloaded
	DryRun bool
	// Progress receives the "Downloading ..." lines
	Progress io.Writer
}

// Fetch retrieves file into dir. indent is the number of spaces in front of
// the progress line.
func (f *Fetcher) Fetch(ctx context.Context, file File, dir string, indent int) (Outcome, error) {
	if !f.Force && f.Cache.Contains(file.FileURL) {
		logrus.WithField("url", file.FileURL).Debug("skipping already downloaded")
		return Skipped, nil
	}

	name, err := safeFilename(file.Filename)
	if err != nil {
		return Skipped, newError(KindFilesystem, "fetch", err)
	}
	target := filepath.Join(dir, name)
	progress := f.progress()
	pad := strings.Repeat(" ", indent)

	if f.DryRun {
		_, _ = fmt.Fprintf(progress, "%sWould download %s\n", pad, target)
		return Planned, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Skipped, newError(KindFilesystem, "fetch", err)
	}

	_, _ = fmt.Fprintf(progress, "%sDownloading %s", pad, target)
	if err := f.download(ctx, file.FileURL, target); err != nil {
		_, _ = fmt.Fprintln(progress, " ... FAILED")
		return Skipped, err
	}
	_, _ = fmt.Fprintln(progress, " ... DONE")

	f.Cache.Record(file.FileURL)
	return Downloaded, nil
}

func (f *Fetcher) download(ctx context.Context, fileURL, target string) error {
	partPath := target + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return newError(KindFilesystem, "fetch", err)
	}

	if err := f.Downloader.Download(ctx, fileURL, out); err != nil {
		closeQuietly(out)
		_ = os.Remove(partPath)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partPath)
		return newError(KindFilesystem, "fetch", err)
	}
	if err := os.Rename(partPath, target); err != nil {
		_ = os.Remove(partPath)
		return newError(KindFilesystem, "fetch", err)
	}
	return nil
}

func (f *Fetcher) progress() io.Writer {
	if f.Progress == nil {
		return io.Discard
	}
	return f.Progress
}

// safeFilename rejects names that would escape the course folder. Accepted
// names are returned unchanged.
func safeFilename(name string) (string, error) {
	switch strings.TrimSpace(name) {
	case "", ".", "..":
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("file name %q contains a path separator", name)
	}
	return name, nil
}
