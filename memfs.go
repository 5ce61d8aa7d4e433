package blockzip

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// memFiler is a minimal in-memory absfs.Filer used by tests and by callers
// that want to build containers without touching disk.
type memFiler struct {
	files map[string]*memFile
	mu    sync.RWMutex
}

// NewMemFiler creates an empty in-memory filesystem.
func NewMemFiler() absfs.Filer {
	return &memFiler{files: make(map[string]*memFile)}
}

// memFile is both the stored file and an open handle onto it; handles share
// the underlying buffer and carry their own position.
type memFile struct {
	name    string
	data    *bytes.Buffer
	mode    fs.FileMode
	modTime time.Time
	pos     int64
	closed  bool
	mu      sync.Mutex
}

// memPath normalizes a path for consistent storage and lookup.
func memPath(name string) string {
	name = filepath.Clean(name)
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, string(filepath.Separator))
	if name == "" {
		name = "."
	}
	return name
}

func (mfs *memFiler) Open(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDONLY, 0)
}

func (mfs *memFiler) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = memPath(name)

	if flag&os.O_CREATE != 0 {
		if _, exists := mfs.files[name]; !exists {
			mfs.files[name] = &memFile{
				name:    name,
				data:    new(bytes.Buffer),
				mode:    perm,
				modTime: time.Now(),
			}
		}
	}

	mf, exists := mfs.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	if flag&os.O_TRUNC != 0 {
		mf.data.Reset()
		mf.modTime = time.Now()
	}

	handle := &memFile{
		name:    mf.name,
		data:    mf.data,
		mode:    mf.mode,
		modTime: mf.modTime,
	}
	if flag&os.O_APPEND != 0 {
		handle.pos = int64(mf.data.Len())
	}
	return handle, nil
}

func (mfs *memFiler) Create(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (mfs *memFiler) Mkdir(name string, perm fs.FileMode) error {
	return nil
}

func (mfs *memFiler) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = memPath(name)
	if _, exists := mfs.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(mfs.files, name)
	return nil
}

func (mfs *memFiler) Rename(oldpath, newpath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	oldpath = memPath(oldpath)
	newpath = memPath(newpath)

	mf, exists := mfs.files[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	mfs.files[newpath] = &memFile{
		name:    newpath,
		data:    mf.data,
		mode:    mf.mode,
		modTime: time.Now(),
	}
	delete(mfs.files, oldpath)
	return nil
}

func (mfs *memFiler) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = memPath(name)
	mf, exists := mfs.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &memFileInfo{
		name:    filepath.Base(mf.name),
		size:    int64(mf.data.Len()),
		mode:    mf.mode,
		modTime: mf.modTime,
	}, nil
}

func (mfs *memFiler) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = memPath(name)
	var entries []fs.DirEntry
	for path, mf := range mfs.files {
		if filepath.Dir(path) == name {
			entries = append(entries, fs.FileInfoToDirEntry(&memFileInfo{
				name:    filepath.Base(mf.name),
				size:    int64(mf.data.Len()),
				mode:    mf.mode,
				modTime: mf.modTime,
			}))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (mfs *memFiler) Chmod(name string, mode os.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = memPath(name)
	mf, exists := mfs.files[name]
	if !exists {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrNotExist}
	}
	mf.mode = mode
	return nil
}

func (mfs *memFiler) Chtimes(name string, atime, mtime time.Time) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = memPath(name)
	mf, exists := mfs.files[name]
	if !exists {
		return &fs.PathError{Op: "chtimes", Path: name, Err: fs.ErrNotExist}
	}
	mf.modTime = mtime
	return nil
}

func (mfs *memFiler) Chown(name string, uid, gid int) error {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = memPath(name)
	if _, exists := mfs.files[name]; !exists {
		return &fs.PathError{Op: "chown", Path: name, Err: fs.ErrNotExist}
	}
	return nil
}

func (mf *memFile) Read(p []byte) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if mf.pos >= int64(mf.data.Len()) {
		return 0, io.EOF
	}
	n = copy(p, mf.data.Bytes()[mf.pos:])
	mf.pos += int64(n)
	return n, nil
}

func (mf *memFile) Write(p []byte) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	n, err = mf.data.Write(p)
	mf.modTime = time.Now()
	return n, err
}

func (mf *memFile) WriteString(s string) (n int, err error) {
	return mf.Write([]byte(s))
}

func (mf *memFile) Close() error {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.closed = true
	return nil
}

func (mf *memFile) Seek(offset int64, whence int) (int64, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = mf.pos + offset
	case io.SeekEnd:
		pos = int64(mf.data.Len()) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("negative position")
	}
	mf.pos = pos
	return pos, nil
}

func (mf *memFile) ReadAt(b []byte, off int64) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	data := mf.data.Bytes()
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n = copy(b, data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (mf *memFile) WriteAt(b []byte, off int64) (n int, err error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	data := mf.data.Bytes()
	if needed := int(off) + len(b); needed > len(data) {
		grown := make([]byte, needed)
		copy(grown, data)
		mf.data = bytes.NewBuffer(grown)
	}
	n = copy(mf.data.Bytes()[off:], b)
	mf.modTime = time.Now()
	return n, nil
}

func (mf *memFile) Truncate(size int64) error {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if mf.closed {
		return fs.ErrClosed
	}
	data := mf.data.Bytes()
	switch {
	case size < int64(len(data)):
		mf.data = bytes.NewBuffer(append([]byte(nil), data[:size]...))
	case size > int64(len(data)):
		grown := make([]byte, size)
		copy(grown, data)
		mf.data = bytes.NewBuffer(grown)
	}
	mf.modTime = time.Now()
	return nil
}

func (mf *memFile) Name() string { return mf.name }

func (mf *memFile) Stat() (fs.FileInfo, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	return &memFileInfo{
		name:    filepath.Base(mf.name),
		size:    int64(mf.data.Len()),
		mode:    mf.mode,
		modTime: mf.modTime,
	}, nil
}

func (mf *memFile) Sync() error { return nil }

func (mf *memFile) Readdir(n int) ([]os.FileInfo, error) {
	return nil, os.ErrInvalid
}

func (mf *memFile) Readdirnames(n int) ([]string, error) {
	return nil, os.ErrInvalid
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }
