package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errNotDirectory = errors.New("not a directory")

// BuildManifest lists every entry below root ordered by remote key, so a
// directory always comes before its contents. Directories are kept and flagged
// so they still count towards progress totals.
func BuildManifest(root, remotePrefix string) ([]Unit, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &FilesystemError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Path: root, Err: errNotDirectory}
	}

	var units []Unit
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return &FilesystemError{Path: path, Err: err}
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return &FilesystemError{Path: path, Err: err}
		}

		unit := Unit{
			LocalPath:   path,
			RemoteKey:   RemoteKey(remotePrefix, filepath.ToSlash(relPath)),
			IsDirectory: info.IsDir(),
		}
		if !unit.IsDirectory {
			unit.Size = info.Size()
		}
		units = append(units, unit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].RemoteKey < units[j].RemoteKey
	})
	return units, nil
}

// FileManifest maps a single file to remotePrefix/basename.
func FileManifest(path, remotePrefix string) ([]Unit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FilesystemError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FilesystemError{Path: path, Err: errors.New("is a directory")}
	}

	return []Unit{{
		LocalPath: path,
		RemoteKey: RemoteKey(remotePrefix, filepath.Base(path)),
		Size:      info.Size(),
	}}, nil
}

// RemoteKey joins prefix and relPath with "/" and collapses empty segments,
// so duplicate, leading and trailing separators never reach the bucket.
func RemoteKey(prefix, relPath string) string {
	segments := strings.Split(prefix+"/"+relPath, "/")
	kept := segments[:0]
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "/")
}
