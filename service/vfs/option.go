package vfs

import (
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/service/dao"
)

// Option customises the file store
type Option func(s *Service)

// WithDAO sets the backing entry store
func WithDAO(dao dao.Service[string, entry.Entry]) Option {
	return func(s *Service) {
		s.dao = dao
	}
}

// WithSeed replaces the default seed entries; an empty call disables seeding
func WithSeed(entries ...*SeedEntry) Option {
	return func(s *Service) {
		s.seed = make([]*SeedEntry, 0, len(entries))
		for _, item := range entries {
			clone := *item
			clone.Path = NormalizePath(item.Path)
			s.seed = append(s.seed, &clone)
		}
	}
}

// WithProtected adds protected paths
func WithProtected(paths ...string) Option {
	return func(s *Service) {
		for _, location := range paths {
			s.protected[NormalizePath(location)] = true
		}
	}
}
