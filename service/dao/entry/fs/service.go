package fs

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fortio.org/log"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/service/dao"
	"github.com/viant/jsrepl/service/dao/criteria"
)

// ParentPathParameter is the List parameter filtering by parent directory.
const ParentPathParameter = "ParentPath"

// Service persists entries as JSON records under baseURL, one object per
// path, with a copy of every record in a folder per parent path so that
// listing a directory reads only its children. Any afs scheme works: file://,
// mem://, s3://, gs://.
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, entry.Entry] = (*Service)(nil)

// Save persists an entry
func (s *Service) Save(ctx context.Context, anEntry *entry.Entry) error {
	if anEntry == nil {
		return dao.ErrNilEntity
	}
	if anEntry.Path == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(anEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry %v: %w", anEntry.Path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, err := s.load(ctx, s.recordURL(anEntry.Path))
	if err != nil && !dao.IsNotFound(err) {
		return fmt.Errorf("failed to check entry %v: %w", anEntry.Path, err)
	}
	if previous != nil && previous.Parent() != anEntry.Parent() {
		if err = s.remove(ctx, s.childURL(previous.Parent(), previous.Path)); err != nil {
			return fmt.Errorf("failed to unindex entry %v: %w", anEntry.Path, err)
		}
	}
	for _, URL := range []string{s.recordURL(anEntry.Path), s.childURL(anEntry.Parent(), anEntry.Path)} {
		if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to save entry %v: %w", anEntry.Path, err)
		}
	}
	return nil
}

// Load retrieves an entry by path
func (s *Service) Load(ctx context.Context, path string) (*entry.Entry, error) {
	if path == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret, err := s.load(ctx, s.recordURL(path))
	if err != nil {
		return nil, fmt.Errorf("entry %v: %w", path, err)
	}
	return ret, nil
}

// Delete removes an entry; deleting a missing entry is not an error.
func (s *Service) Delete(ctx context.Context, path string) error {
	if path == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(path)
	existing, err := s.load(ctx, URL)
	if dao.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check entry %v: %w", path, err)
	}
	if err = s.remove(ctx, s.childURL(existing.Parent(), path)); err != nil {
		return fmt.Errorf("failed to unindex entry %v: %w", path, err)
	}
	if err = s.remove(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete entry %v: %w", path, err)
	}
	return nil
}

// List returns entries ordered by path. A ParentPath parameter reads only the
// folders of the requested parents; without one every record is read.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folders := []string{url.Join(s.baseURL, recordsFolder)}
	if parents, ok := parentValues(parameters); ok {
		folders = folders[:0]
		for _, parent := range parents {
			folders = append(folders, s.childrenURL(parent))
		}
	}
	var result []*entry.Entry
	for _, folder := range folders {
		entries, err := s.list(ctx, folder)
		if err != nil {
			return nil, err
		}
		for _, anEntry := range entries {
			if criteria.Matches(ParentPathParameter, anEntry.Parent(), parameters) {
				result = append(result, anEntry)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

func (s *Service) list(ctx context.Context, folderURL string) ([]*entry.Entry, error) {
	exists, err := s.fs.Exists(ctx, folderURL)
	if err != nil || !exists {
		return nil, err
	}
	objects, err := s.fs.List(ctx, folderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	var result []*entry.Entry
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Warnf("failed to read entry record %v: %v", object.URL(), err)
			continue
		}
		anEntry := &entry.Entry{}
		if err := json.Unmarshal(data, anEntry); err != nil {
			log.Warnf("failed to unmarshal entry record %v: %v", object.URL(), err)
			continue
		}
		result = append(result, anEntry)
	}
	return result, nil
}

func (s *Service) load(ctx context.Context, URL string) (*entry.Entry, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	ret := &entry.Entry{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %v: %w", URL, err)
	}
	return ret, nil
}

func (s *Service) remove(ctx context.Context, URL string) error {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return err
	}
	return s.fs.Delete(ctx, URL)
}

const (
	recordsFolder  = "records"
	childrenFolder = "children"
)

func (s *Service) recordURL(path string) string {
	return url.Join(s.baseURL, recordsFolder, encode(path)+".json")
}

// childrenURL returns the folder of parent; the root entry has an empty parent
func (s *Service) childrenURL(parent string) string {
	return url.Join(s.baseURL, childrenFolder, "p"+encode(parent))
}

func (s *Service) childURL(parent, path string) string {
	return url.Join(s.childrenURL(parent), encode(path)+".json")
}

func encode(path string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

// parentValues returns ParentPath values when the parameters carry exactly one ParentPath criterion
func parentValues(parameters []*dao.Parameter) ([]string, bool) {
	var ret []string
	found := 0
	for _, parameter := range parameters {
		if parameter != nil && parameter.Name == ParentPathParameter {
			ret = parameter.Values()
			found++
		}
	}
	return ret, found == 1
}

// New creates a filesystem entry store rooted at baseURL
func New(ctx context.Context, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	fs := afs.New()
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create entry store %v: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
