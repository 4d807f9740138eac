package io

import (
	"os"
)

//go:generate mockgen -package mocks -destination mocks/file_io.go github.com/kasuboski/renamez/pkg/io FileIO

// FileIO is an interface for file io operations
type FileIO interface {
	Stat(target string) (os.FileInfo, error)
	Rename(source, target string) error
	FileExists(path string) bool
}
