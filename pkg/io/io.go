package io

import (
	"errors"
	"os"
)

var (
	_ FileIO = (*LocalFileSystem)(nil)

	ErrFileExists = errors.New("file already exists")
)

// LocalFileSystem is the default implementation of file io using the os package
type LocalFileSystem struct{}

// Stat is a wrapper around os.Stat
func (o *LocalFileSystem) Stat(target string) (os.FileInfo, error) {
	return os.Stat(target)
}

// Rename is a wrapper around os.Rename that refuses to replace an existing file.
// Changing only the case of a name on a case-insensitive file system is allowed.
func (o *LocalFileSystem) Rename(source, target string) error {
	targetInfo, err := o.Stat(target)
	if err == nil {
		sourceInfo, err := o.Stat(source)
		if err != nil || !os.SameFile(sourceInfo, targetInfo) {
			return ErrFileExists
		}
	}

	return os.Rename(source, target)
}

// FileExists reports whether path can be stat'ed
func (o *LocalFileSystem) FileExists(path string) bool {
	_, err := o.Stat(path)
	return err == nil
}
