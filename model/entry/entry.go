package entry

import (
	"time"
)

// Type enumerates VFS entry kinds.
type Type string

const (
	TypeFile      Type = "file"
	TypeDirectory Type = "directory"
)

// RootPath is the path of the root directory.
const RootPath = "/"

// Entry represents one file or directory record of the virtual file system.
// Content is nil iff the entry is a directory.
type Entry struct {
	Path       string    `json:"path" yaml:"path"`
	ParentPath *string   `json:"parentPath" yaml:"parentPath"`
	Type       Type      `json:"type" yaml:"type"`
	Content    *string   `json:"content" yaml:"content"`
	ModifiedAt time.Time `json:"modifiedAt" yaml:"modifiedAt"`
}

// IsDir returns true for directory entries
func (e *Entry) IsDir() bool {
	return e != nil && e.Type == TypeDirectory
}

// IsFile returns true for file entries
func (e *Entry) IsFile() bool {
	return e != nil && e.Type == TypeFile
}

// Parent returns parent path or empty string for the root entry.
func (e *Entry) Parent() string {
	if e == nil || e.ParentPath == nil {
		return ""
	}
	return *e.ParentPath
}

// Text returns file content, or empty string for directories.
func (e *Entry) Text() string {
	if e == nil || e.Content == nil {
		return ""
	}
	return *e.Content
}

// Size returns content length in bytes.
func (e *Entry) Size() int {
	return len(e.Text())
}

// Name returns the last path segment ("/" for root).
func (e *Entry) Name() string {
	if e.Path == RootPath {
		return RootPath
	}
	for i := len(e.Path) - 1; i >= 0; i-- {
		if e.Path[i] == '/' {
			return e.Path[i+1:]
		}
	}
	return e.Path
}

// Clone returns a deep copy
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	ret := *e
	if e.ParentPath != nil {
		parent := *e.ParentPath
		ret.ParentPath = &parent
	}
	if e.Content != nil {
		content := *e.Content
		ret.Content = &content
	}
	return &ret
}

// NewFile creates a file entry
func NewFile(path, parentPath, content string, modifiedAt time.Time) *Entry {
	return &Entry{Path: path, ParentPath: &parentPath, Type: TypeFile, Content: &content, ModifiedAt: modifiedAt}
}

// NewDirectory creates a directory entry; the root directory has no parent.
func NewDirectory(path, parentPath string, modifiedAt time.Time) *Entry {
	ret := &Entry{Path: path, Type: TypeDirectory, ModifiedAt: modifiedAt}
	if path != RootPath {
		ret.ParentPath = &parentPath
	}
	return ret
}

// Stat is a serialisable summary of an entry.
type Stat struct {
	Path        string    `json:"path"`
	IsFile      bool      `json:"isFile"`
	IsDirectory bool      `json:"isDirectory"`
	Size        int       `json:"size"`
	Modified    time.Time `json:"modified"`
}

// Stat returns entry summary
func (e *Entry) Stat() *Stat {
	return &Stat{
		Path:        e.Path,
		IsFile:      e.IsFile(),
		IsDirectory: e.IsDir(),
		Size:        e.Size(),
		Modified:    e.ModifiedAt,
	}
}
