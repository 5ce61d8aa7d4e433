package blockzip

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// osFiler adapts the os package to absfs.Filer. *os.File already satisfies
// absfs.File, so the adapter is a thin veneer of free functions.
type osFiler struct{}

// OSFiler returns an absfs.Filer backed by the host filesystem.
func OSFiler() absfs.Filer {
	return osFiler{}
}

func (osFiler) Open(name string) (absfs.File, error) {
	return os.Open(name)
}

func (osFiler) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	return os.OpenFile(name, flag, perm)
}

func (osFiler) Create(name string) (absfs.File, error) {
	return os.Create(name)
}

func (osFiler) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

func (osFiler) Remove(name string) error {
	return os.Remove(name)
}

func (osFiler) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (osFiler) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFiler) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (osFiler) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (osFiler) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

func (osFiler) Chown(name string, uid, gid int) error {
	return os.Chown(name, uid, gid)
}
