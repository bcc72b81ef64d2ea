package changelog

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the set of mutating file-system calls used by Init,
// Release and AddEntry. Tests substitute implementations that fail on
// demand.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	RemoveAll(path string) error
}

// OS is the FileSystem backed by the operating system.
var OS FileSystem = osFileSystem{}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (osFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (osFileSystem) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osFileSystem) RemoveAll(path string) error { return os.RemoveAll(path) }

func (osFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func orOS(fsys FileSystem) FileSystem {
	if fsys == nil {
		return OS
	}
	return fsys
}

// writeSkeleton creates dir with one empty subdirectory per category. Each
// subdirectory gets a keep file so version control tracks it.
func writeSkeleton(fsys FileSystem, dir string) error {
	for _, kind := range Categories() {
		categoryDir := filepath.Join(dir, kind.DirName())
		if err := fsys.MkdirAll(categoryDir, 0o755); err != nil {
			return ioError(categoryDir, "creating category directory", err)
		}
		keep := filepath.Join(categoryDir, KeepFile)
		if err := fsys.WriteFile(keep, nil, 0o644); err != nil {
			return ioError(keep, "creating keep file", err)
		}
	}
	return nil
}
