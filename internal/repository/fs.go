package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem changelogs are written to and read back from.
// Production uses afero.NewOsFs, tests an in-memory afero.Fs.
type FileSystemRepository interface {
	afero.Fs
}
