package evaluator

import (
	"context"
	"errors"
	"time"

	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/runtime/script"
	"github.com/viant/jsrepl/service/vfs"
)

// FileSystem is the blocking file surface exposed to snippets
type FileSystem interface {
	ReadFile(ctx context.Context, location string) (string, error)
	WriteFile(ctx context.Context, location, content string) error
	ReadDir(ctx context.Context, location string) ([]string, error)
	Exists(ctx context.Context, location string) (bool, error)
	Mkdir(ctx context.Context, location string) error
	Rmdir(ctx context.Context, location string) error
	Unlink(ctx context.Context, location string) error
	Stat(ctx context.Context, location string) (*entry.Stat, error)
}

type host struct {
	ctx    context.Context
	fs     FileSystem
	policy *policy.Policy
}

type hostFunc struct {
	name       string
	capability string
	fn         func(ctx context.Context, call *script.Call) (interface{}, error)
}

func (h *host) functions() []*hostFunc {
	return []*hostFunc{
		{name: "readFileSync", capability: policy.FSRead, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return h.fs.ReadFile(ctx, script.ToString(call.Arg(0)))
		}},
		{name: "writeFileSync", capability: policy.FSWrite, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return script.Undefined, h.fs.WriteFile(ctx, script.ToString(call.Arg(0)), script.ToString(call.Arg(1)))
		}},
		{name: "readdirSync", capability: policy.FSRead, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			location := entry.RootPath
			if arg := call.Arg(0); !script.IsUndefined(arg) {
				location = script.ToString(arg)
			}
			names, err := h.fs.ReadDir(ctx, location)
			if err != nil {
				return nil, err
			}
			elements := make([]interface{}, len(names))
			for i, name := range names {
				elements[i] = name
			}
			return script.NewArray(elements...), nil
		}},
		{name: "existsSync", capability: policy.FSRead, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return h.fs.Exists(ctx, script.ToString(call.Arg(0)))
		}},
		{name: "statSync", capability: policy.FSRead, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			stat, err := h.fs.Stat(ctx, script.ToString(call.Arg(0)))
			if err != nil {
				return nil, err
			}
			return statObject(stat), nil
		}},
		{name: "mkdirSync", capability: policy.FSWrite, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return script.Undefined, h.fs.Mkdir(ctx, script.ToString(call.Arg(0)))
		}},
		{name: "rmdirSync", capability: policy.FSWrite, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return script.Undefined, h.fs.Rmdir(ctx, script.ToString(call.Arg(0)))
		}},
		{name: "unlinkSync", capability: policy.FSWrite, fn: func(ctx context.Context, call *script.Call) (interface{}, error) {
			return script.Undefined, h.fs.Unlink(ctx, script.ToString(call.Arg(0)))
		}},
	}
}

// install binds granted file functions and require('fs')
func (h *host) install(interp *script.Interpreter) {
	module := script.NewObject()
	for _, item := range h.functions() {
		if !h.policy.Grants(item.capability) {
			continue
		}
		native := h.native(item)
		interp.DefineGlobal(item.name, native)
		module.Set(item.name, native)
	}
	if module.Len() == 0 {
		return
	}
	interp.DefineGlobal("require", script.NewNative("require", func(call *script.Call) (interface{}, error) {
		name := script.ToString(call.Arg(0))
		if name == "fs" || name == "node:fs" {
			return module, nil
		}
		return nil, script.NewError(script.GenericError, "Cannot find module '%s'", name)
	}))
}

func (h *host) native(item *hostFunc) *script.Native {
	return script.NewNative(item.name, func(call *script.Call) (interface{}, error) {
		if !h.policy.Approve(h.ctx, item.capability, item.name, call.Args) {
			return nil, script.NewError(script.GenericError, "%s: permission denied (%s)", item.name, item.capability)
		}
		result, err := item.fn(h.ctx, call)
		if err != nil {
			return nil, hostError(err)
		}
		return result, nil
	})
}

// hostError re-raises a file store failure as a script error
func hostError(err error) error {
	if errors.Is(err, vfs.ErrTimeout) {
		return script.NewError(script.TimeoutError, "%v", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &script.Interrupt{Err: err}
	}
	return script.NewError(script.GenericError, "%v", err)
}

func statObject(stat *entry.Stat) *script.Object {
	ret := script.NewObject()
	ret.Set("path", stat.Path)
	ret.Set("size", float64(stat.Size))
	ret.Set("mtime", stat.Modified.UTC().Format(time.RFC3339Nano))
	isFile, isDirectory := stat.IsFile, stat.IsDirectory
	ret.Set("isFile", script.NewNative("isFile", func(call *script.Call) (interface{}, error) {
		return isFile, nil
	}))
	ret.Set("isDirectory", script.NewNative("isDirectory", func(call *script.Call) (interface{}, error) {
		return isDirectory, nil
	}))
	return ret
}
