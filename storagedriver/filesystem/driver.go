// Package filesystem implements the storagedriver.StorageDriver interface
// backed by a local directory tree. It is the only driver bao serve
// supports, selected by a "filesystem" storage entry in its configuration.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/baoverify/bao/storagedriver"
)

const driverName = "filesystem"

// DriverParameters configures a filesystem Driver.
type DriverParameters struct {
	// RootDirectory is the directory under which all paths are rooted.
	RootDirectory string
}

// Driver is a storagedriver.StorageDriver that stores content as files
// under a root directory, mirroring the given path hierarchy.
type Driver struct {
	rootDirectory string
}

var _ storagedriver.StorageDriver = (*Driver)(nil)

// New constructs a Driver rooted at params.RootDirectory.
func New(params DriverParameters) (*Driver, error) {
	if params.RootDirectory == "" {
		return nil, fmt.Errorf("%s: root directory must not be empty", driverName)
	}
	if err := os.MkdirAll(params.RootDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("%s: creating root directory: %w", driverName, err)
	}
	return &Driver{rootDirectory: params.RootDirectory}, nil
}

func (d *Driver) fullPath(path string) string {
	return filepath.Join(d.rootDirectory, filepath.FromSlash(path))
}

// GetContent retrieves the content stored at "path" as a []byte.
func (d *Driver) GetContent(path string) ([]byte, error) {
	contents, err := os.ReadFile(d.fullPath(path))
	if os.IsNotExist(err) {
		return nil, storagedriver.PathNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// PutContent stores the []byte content at a location designated by "path".
func (d *Driver) PutContent(path string, content []byte) error {
	fullPath := d.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fullPath)
}

// ReadStream retrieves an io.ReadCloser for the content stored at "path"
// with a given byte offset.
func (d *Driver) ReadStream(path string, offset int64) (io.ReadCloser, error) {
	file, err := os.Open(d.fullPath(path))
	if os.IsNotExist(err) {
		return nil, storagedriver.PathNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	if offset > 0 {
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			file.Close()
			return nil, storagedriver.InvalidOffsetError{Path: path, Offset: offset}
		}
	}
	return file, nil
}

// WriteStream stores the contents of reader at a location designated by
// path, starting at offset.
func (d *Driver) WriteStream(path string, offset int64, reader io.Reader) (int64, error) {
	fullPath := d.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, err
	}
	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	if offset > 0 {
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return 0, storagedriver.InvalidOffsetError{Path: path, Offset: offset}
		}
	}
	return io.Copy(file, reader)
}

// Stat retrieves the FileInfo for the given path.
func (d *Driver) Stat(path string) (storagedriver.FileInfo, error) {
	fi, err := os.Stat(d.fullPath(path))
	if os.IsNotExist(err) {
		return nil, storagedriver.PathNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	return storagedriver.FileInfoInternal{
		FileInfoFields: storagedriver.FileInfoFields{
			Path:    path,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
			IsDir:   fi.IsDir(),
		},
	}, nil
}

// List returns a list of the objects that are direct descendants of path.
func (d *Driver) List(path string) ([]string, error) {
	fullPath := d.fullPath(path)
	entries, err := os.ReadDir(fullPath)
	if os.IsNotExist(err) {
		return nil, storagedriver.PathNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, filepath.ToSlash(filepath.Join(path, entry.Name())))
	}
	sort.Strings(keys)
	return keys, nil
}

// Move moves an object stored at sourcePath to destPath.
func (d *Driver) Move(sourcePath string, destPath string) error {
	source := d.fullPath(sourcePath)
	dest := d.fullPath(destPath)
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return storagedriver.PathNotFoundError{Path: sourcePath}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.Rename(source, dest)
}

// Delete recursively deletes all objects stored at path and its subpaths.
func (d *Driver) Delete(path string) error {
	fullPath := d.fullPath(path)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return storagedriver.PathNotFoundError{Path: path}
	}
	return os.RemoveAll(fullPath)
}
