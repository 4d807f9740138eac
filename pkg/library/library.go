package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kasuboski/renamez/pkg/download"
	"github.com/kasuboski/renamez/pkg/io"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/parser"
)

var _ download.Client = (*Library)(nil)

// Library exposes the top level of a local directory as renameable entries.
// Entries are video files and directories; the entry id is its name.
type Library struct {
	root string
	fsys fs.FS
	io   io.FileIO
}

// New creates a library rooted at dir
func New(dir string, fileIO io.FileIO) *Library {
	return NewFromFS(dir, os.DirFS(dir), fileIO)
}

// NewFromFS creates a library that lists entries from fsys and renames them under dir
func NewFromFS(dir string, fsys fs.FS, fileIO io.FileIO) *Library {
	return &Library{
		root: dir,
		fsys: fsys,
		io:   fileIO,
	}
}

// List returns the video files and directories directly under the library root
func (l *Library) List(ctx context.Context) ([]download.Status, error) {
	log := logger.FromCtx(ctx)

	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", download.ErrConnection, l.root, err)
	}

	statuses := make([]download.Status, 0, len(entries))
	for _, d := range entries {
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if !d.IsDir() && !isVideoFile(name) {
			log.Debugw("skipping", "file", name)
			continue
		}

		info, err := d.Info()
		if err != nil {
			log.Debugw("failed to stat entry", "name", name, "error", err)
			continue
		}

		size := info.Size()
		if d.IsDir() {
			size = l.dirSize(ctx, name)
		}

		statuses = append(statuses, download.Status{
			ID:      name,
			Name:    name,
			Dir:     l.root,
			Size:    size,
			AddedAt: info.ModTime(),
		})
	}

	return statuses, nil
}

// Rename renames an entry in place. The new name must be a plain name and must not exist yet.
func (l *Library) Rename(ctx context.Context, request download.RenameRequest) error {
	if request.ID != request.From {
		return fmt.Errorf("%w: entry %q is no longer named %q", download.ErrRename, request.ID, request.From)
	}

	if err := validateName(request.To); err != nil {
		return fmt.Errorf("%w: %w", download.ErrRename, err)
	}

	source := filepath.Join(l.root, request.From)
	target := filepath.Join(l.root, request.To)

	if err := l.io.Rename(source, target); err != nil {
		return fmt.Errorf("%w: %w", download.ErrRename, err)
	}

	logger.FromCtx(ctx).Debugw("renamed entry", "from", source, "to", target)
	return nil
}

func (l *Library) dirSize(ctx context.Context, dir string) int64 {
	log := logger.FromCtx(ctx)

	var size int64
	err := fs.WalkDir(l.fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// just skip this dir if there's an issue
			return fs.SkipDir
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err == nil {
			size += info.Size()
		}

		return nil
	})
	if err != nil {
		log.Debugw("failed to size directory", "dir", dir, "error", err)
	}

	return size
}

func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("name %q must not contain a path separator", name)
	}

	return nil
}

func isVideoFile(name string) bool {
	return parser.IsVideoExtension(filepath.Ext(name))
}
