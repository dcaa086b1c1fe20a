package operation

import (
	"time"
)

// Name identifies a file store operation.
type Name string

const (
	ReadFile   Name = "readFile"
	WriteFile  Name = "writeFile"
	DeleteFile Name = "deleteFile"
	ReadDir    Name = "readdir"
	Mkdir      Name = "mkdir"
	Rmdir      Name = "rmdir"
	Touch      Name = "touch"
	Exists     Name = "exists"
	Stat       Name = "stat"
)

// Mutates returns true when the operation changes the store.
func (n Name) Mutates() bool {
	switch n {
	case WriteFile, DeleteFile, Mkdir, Rmdir, Touch:
		return true
	}
	return false
}

// Operation represents a single asynchronous file store request.
type Operation struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId,omitempty"`
	Name        Name      `json:"name"`
	Path        string    `json:"path"`
	Content     string    `json:"content,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Attempts    int       `json:"attempts,omitempty"`
	Pending     *Pending  `json:"-"`
}

// New creates an operation with a fresh pending handle
func New(id string, name Name, path string, content string) *Operation {
	return &Operation{
		ID:          id,
		Name:        name,
		Path:        path,
		Content:     content,
		ScheduledAt: time.Now(),
		Pending:     NewPending(),
	}
}
