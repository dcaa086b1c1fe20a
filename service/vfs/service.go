package vfs

import (
	"context"
	"fmt"
	"sync"

	"fortio.org/log"
	"github.com/viant/jsrepl/internal/clock"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/service/dao"
	"github.com/viant/jsrepl/service/dao/entry/memory"
)

// ParentPathParameter names the List parameter used for directory listing.
const ParentPathParameter = "ParentPath"

// Service implements a hierarchical file store over a keyed entry DAO.
// Check-then-write sequences are serialised, so every operation is atomic
// at the single-entry level.
type Service struct {
	dao       dao.Service[string, entry.Entry]
	seed      []*SeedEntry
	protected map[string]bool
	mu        sync.RWMutex
}

// IsProtected returns true if the normalized path can not be deleted or overwritten
func (s *Service) IsProtected(location string) bool {
	return s.protected[NormalizePath(location)]
}

// Init creates the root directory and the seed entries that are absent.
// Existing entries are never overwritten.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureRoot(ctx); err != nil {
		return err
	}
	created := 0
	for _, item := range s.seed {
		existing, err := s.load(ctx, item.Path)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		parent := ParentPath(item.Path)
		if err = s.dao.Save(ctx, entry.NewFile(item.Path, parent, item.Content, clock.Now())); err != nil {
			return fmt.Errorf("failed to seed %v: %w", item.Path, err)
		}
		created++
	}
	if created > 0 {
		log.LogVf("seeded %d default entries", created)
	}
	return nil
}

// ReadFile returns file content
func (s *Service) ReadFile(ctx context.Context, location string) (string, error) {
	location = NormalizePath(location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	anEntry, err := s.load(ctx, location)
	if err != nil {
		return "", err
	}
	if anEntry == nil {
		return "", newError("readFile", location, ErrNotFound)
	}
	if anEntry.IsDir() {
		return "", newError("readFile", location, ErrIsDirectory)
	}
	return anEntry.Text(), nil
}

// WriteFile creates or overwrites a file
func (s *Service) WriteFile(ctx context.Context, location string, content string) error {
	location = NormalizePath(location)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(ctx, location, content)
}

func (s *Service) writeFile(ctx context.Context, location string, content string) error {
	if s.protected[location] {
		return newError("writeFile", location, ErrProtectedFile)
	}
	if location == entry.RootPath {
		return newError("writeFile", location, ErrIsDirectory)
	}
	parent := ParentPath(location)
	if err := s.ensureParent(ctx, "writeFile", location, parent); err != nil {
		return err
	}
	existing, err := s.load(ctx, location)
	if err != nil {
		return err
	}
	if existing.IsDir() {
		return newError("writeFile", location, ErrIsDirectory)
	}
	if err = s.dao.Save(ctx, entry.NewFile(location, parent, content, clock.Now())); err != nil {
		return fmt.Errorf("failed to write file %v: %w", location, err)
	}
	return nil
}

// DeleteFile removes an entry
func (s *Service) DeleteFile(ctx context.Context, location string) error {
	location = NormalizePath(location)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteFile(ctx, location)
}

func (s *Service) deleteFile(ctx context.Context, location string) error {
	if s.protected[location] || location == entry.RootPath {
		return newError("deleteFile", location, ErrProtectedFile)
	}
	existing, err := s.load(ctx, location)
	if err != nil {
		return err
	}
	if existing == nil {
		return newError("deleteFile", location, ErrNotFound)
	}
	if err = s.dao.Delete(ctx, location); err != nil {
		return fmt.Errorf("failed to delete %v: %w", location, err)
	}
	return nil
}

// ReadDir returns entries whose parent is the given path, ordered by path
func (s *Service) ReadDir(ctx context.Context, location string) ([]*entry.Entry, error) {
	location = NormalizePath(location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readDir(ctx, location)
}

func (s *Service) readDir(ctx context.Context, location string) ([]*entry.Entry, error) {
	existing, err := s.load(ctx, location)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, newError("readdir", location, ErrNotFound)
	}
	children, err := s.dao.List(ctx, dao.NewParameter(ParentPathParameter, location))
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", location, err)
	}
	result := make([]*entry.Entry, 0, len(children))
	for _, child := range children {
		if child.Path == entry.RootPath || child.Parent() != location {
			continue
		}
		result = append(result, child.Clone())
	}
	return result, nil
}

// Mkdir creates a directory
func (s *Service) Mkdir(ctx context.Context, location string) error {
	location = NormalizePath(location)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load(ctx, location)
	if err != nil {
		return err
	}
	if existing != nil {
		return newError("mkdir", location, ErrAlreadyExists)
	}
	parent := ParentPath(location)
	if err = s.ensureParent(ctx, "mkdir", location, parent); err != nil {
		return err
	}
	if err = s.dao.Save(ctx, entry.NewDirectory(location, parent, clock.Now())); err != nil {
		return fmt.Errorf("failed to create directory %v: %w", location, err)
	}
	return nil
}

// Rmdir removes an empty directory
func (s *Service) Rmdir(ctx context.Context, location string) error {
	location = NormalizePath(location)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load(ctx, location)
	if err != nil {
		return err
	}
	if existing == nil {
		return newError("rmdir", location, ErrNotFound)
	}
	children, err := s.readDir(ctx, location)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return newError("rmdir", location, ErrDirectoryNotEmpty)
	}
	return s.deleteFile(ctx, location)
}

// Touch creates an empty file or rewrites an existing one to refresh its modification time
func (s *Service) Touch(ctx context.Context, location string) error {
	location = NormalizePath(location)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load(ctx, location)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.writeFile(ctx, location, "")
	}
	if existing.IsDir() {
		return newError("touch", location, ErrIsDirectory)
	}
	return s.writeFile(ctx, location, existing.Text())
}

// Exists returns true if an entry exists
func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	location = NormalizePath(location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, err := s.load(ctx, location)
	return existing != nil, err
}

// Stat returns entry summary
func (s *Service) Stat(ctx context.Context, location string) (*entry.Stat, error) {
	location = NormalizePath(location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, err := s.load(ctx, location)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, newError("stat", location, ErrNotFound)
	}
	return existing.Stat(), nil
}

// Clear removes every entry and recreates the root directory
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.dao.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	for _, item := range entries {
		if err = s.dao.Delete(ctx, item.Path); err != nil {
			return fmt.Errorf("failed to delete %v: %w", item.Path, err)
		}
	}
	return s.ensureRoot(ctx)
}

func (s *Service) ensureRoot(ctx context.Context) error {
	root, err := s.load(ctx, entry.RootPath)
	if err != nil || root != nil {
		return err
	}
	if err = s.dao.Save(ctx, entry.NewDirectory(entry.RootPath, "", clock.Now())); err != nil {
		return fmt.Errorf("failed to create root directory: %w", err)
	}
	return nil
}

func (s *Service) ensureParent(ctx context.Context, op, location, parent string) error {
	if parent == entry.RootPath {
		return nil
	}
	parentEntry, err := s.load(ctx, parent)
	if err != nil {
		return err
	}
	if !parentEntry.IsDir() {
		return newError(op, location, ErrNoSuchParent)
	}
	return nil
}

// load returns an entry or nil when absent
func (s *Service) load(ctx context.Context, location string) (*entry.Entry, error) {
	ret, err := s.dao.Load(ctx, location)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %v: %w", location, err)
	}
	return ret, nil
}

// New creates a file store service. Without WithSeed the embedded default
// seed is used; its protected entries form the protected-path set.
func New(options ...Option) (*Service, error) {
	ret := &Service{protected: map[string]bool{}}
	for _, option := range options {
		option(ret)
	}
	if ret.dao == nil {
		ret.dao = memory.New()
	}
	if ret.seed == nil {
		seed, err := DefaultSeed()
		if err != nil {
			return nil, err
		}
		ret.seed = seed
	}
	for _, item := range ret.seed {
		if item.Protected {
			ret.protected[item.Path] = true
		}
	}
	return ret, nil
}
