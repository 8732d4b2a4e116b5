package objmodel

import (
	"io/fs"
	"os"
)

// FileSystem is the file access the loader needs: a size check before
// parsing and a readable handle for line iteration.
//
// testing/fstest.MapFS satisfies it, which keeps tests off the disk.
type FileSystem interface {
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem reads files from the host operating system.
type OSFileSystem struct{}

// Open opens the named file for reading.
func (OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// Stat returns file info for the named file.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
