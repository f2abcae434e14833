package welearn

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DefaultCachePath is the link cache location, relative to the working directory.
const DefaultCachePath = ".link_cache"

// LinkCache remembers the file URLs that were already downloaded
type LinkCache struct {
	links   map[string]struct{}
	linksMu sync.Mutex
	path    string
}

// NewLinkCache creates an empty cache backed by path. An empty path keeps
// the cache in memory only.
func NewLinkCache(path string) *LinkCache {
	return &LinkCache{
		links: make(map[string]struct{}),
		path:  path,
	}
}

// Path returns the file the cache is persisted to
func (lc *LinkCache) Path() string {
	return lc.path
}

// Contains reports whether fileURL was recorded
func (lc *LinkCache) Contains(fileURL string) bool {
	lc.linksMu.Lock()
	defer lc.linksMu.Unlock()
	_, ok := lc.links[strings.TrimSpace(fileURL)]
	return ok
}

// Record adds fileURL to the cache. Recording the same URL twice is a no-op.
func (lc *LinkCache) Record(fileURL string) {
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return
	}
	lc.linksMu.Lock()
	lc.links[fileURL] = struct{}{}
	lc.linksMu.Unlock()
}

// Len returns the number of cached links
func (lc *LinkCache) Len() int {
	lc.linksMu.Lock()
	defer lc.linksMu.Unlock()
	return len(lc.links)
}

// Links returns the cached links in sorted order
func (lc *LinkCache) Links() []string {
	lc.linksMu.Lock()
	keys := make([]string, 0, len(lc.links))
	for k := range lc.links {
		keys = append(keys, k)
	}
	lc.linksMu.Unlock()
	sort.Strings(keys)
	return keys
}

// Load merges the links stored on disk into the cache. A missing file is
// not an error.
func (lc *LinkCache) Load() error {
	if lc.path == "" {
		return nil
	}

	file, err := os.Open(lc.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return newError(KindFilesystem, "load link cache", err)
	}
	defer closeQuietly(file)

	links, err := readLinks(file)
	if err != nil {
		return newError(KindFilesystem, "load link cache", err)
	}
	for _, link := range links {
		lc.Record(link)
	}
	return nil
}

// readLinks returns the non-blank lines of r that are not # comments
func readLinks(r io.Reader) ([]string, error) {
	var links []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			links = append(links, line)
		}
	}
	return links, scanner.Err()
}

// Save overwrites the file on disk with every cached link, one per line.
// The links are written to a sibling .tmp file which then replaces the
// cache file.
func (lc *LinkCache) Save() error {
	if lc.path == "" {
		return nil
	}
	if err := lc.save(); err != nil {
		return newError(KindFilesystem, "save link cache", err)
	}
	return nil
}

func (lc *LinkCache) save() (err error) {
	if err := os.MkdirAll(filepath.Dir(lc.path), 0o755); err != nil {
		return err
	}

	tmpPath := lc.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			closeQuietly(file)
			_ = os.Remove(tmpPath)
		}
	}()

	if err = writeLinks(file, lc.Links()); err != nil {
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, lc.path)
}

func writeLinks(w io.Writer, links []string) error {
	buf := bufio.NewWriter(w)
	for _, link := range links {
		if _, err := buf.WriteString(link + "\n"); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
