// Package collector implements domain.SourceCollector by walking the
// filesystem.
package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// skipDirs are directory names never recursed into, on top of hidden
// directories.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"coverage":     true,
}

// maxConcurrentReads bounds the file reads issued by ReadAll.
const maxConcurrentReads = 16

// FileCollector walks a source tree. Symlinks are not followed: traversal
// uses the directory entries as reported, so a symlink cycle cannot loop.
type FileCollector struct{}

func New() *FileCollector {
	return &FileCollector{}
}

// Collect returns every file under root whose name ends with suffix, as
// slash-separated root-relative paths. Hidden directories and dependency
// caches are skipped entirely. A missing root surfaces the underlying
// fs.ErrNotExist; callers decide whether that is fatal.
func (c *FileCollector) Collect(root, suffix string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), suffix) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadAll reads the given root-relative files concurrently and returns
// their contents keyed by the same relative path. Any single read error
// fails the whole call: a rule's verdict is only recorded once every read
// it asked for has completed.
func (c *FileCollector) ReadAll(ctx context.Context, root string, paths []string) (map[string]string, error) {
	contents := make(map[string]string, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
			if err != nil {
				return err
			}
			mu.Lock()
			contents[p] = string(data)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
