package vfs

import (
	"context"
	"fmt"

	"github.com/viant/jsrepl/model/operation"
)

// Execute runs an asynchronous operation against the store. Results are
// string for readFile, []*entry.Entry for readdir, bool for exists,
// *entry.Stat for stat and nil otherwise.
func (s *Service) Execute(ctx context.Context, op *operation.Operation) (interface{}, error) {
	if op == nil {
		return nil, fmt.Errorf("operation was nil")
	}
	switch op.Name {
	case operation.ReadFile:
		return s.ReadFile(ctx, op.Path)
	case operation.WriteFile:
		return nil, s.WriteFile(ctx, op.Path, op.Content)
	case operation.DeleteFile:
		return nil, s.DeleteFile(ctx, op.Path)
	case operation.ReadDir:
		return s.ReadDir(ctx, op.Path)
	case operation.Mkdir:
		return nil, s.Mkdir(ctx, op.Path)
	case operation.Rmdir:
		return nil, s.Rmdir(ctx, op.Path)
	case operation.Touch:
		return nil, s.Touch(ctx, op.Path)
	case operation.Exists:
		return s.Exists(ctx, op.Path)
	case operation.Stat:
		return s.Stat(ctx, op.Path)
	}
	return nil, fmt.Errorf("unsupported operation: %v", op.Name)
}
