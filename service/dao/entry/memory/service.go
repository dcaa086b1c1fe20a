package memory

import (
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/service/dao"
	"github.com/viant/jsrepl/service/dao/store"
)

// ParentPathParameter is the List parameter served by the parentPath index.
const ParentPathParameter = "ParentPath"

// Service is an in-memory entry store keyed by normalized path with a
// secondary parentPath index for directory listing.
type Service struct {
	*store.MemoryStore[string, entry.Entry]
}

// ensure Service implements dao.Service
var _ dao.Service[string, entry.Entry] = (*Service)(nil)

// New creates an in-memory entry store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, entry.Entry](
			func(e *entry.Entry) string { return e.Path },
			store.WithIndex[string, entry.Entry](ParentPathParameter, func(e *entry.Entry) string { return e.Parent() }),
			store.WithOrder[string, entry.Entry](func(a, b *entry.Entry) bool { return a.Path < b.Path }),
		),
	}
}
