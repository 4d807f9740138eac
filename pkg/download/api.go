package download

import (
	"context"
	"errors"
	"net/http"
	"time"
)

//go:generate mockgen -package mocks -destination mocks/http/mock_http_client.go github.com/kasuboski/renamez/pkg/download HTTPClient
//go:generate mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/renamez/pkg/download Client

var (
	// ErrConnection is returned when the download client cannot be reached or refuses the session
	ErrConnection = errors.New("download client connection failed")
	// ErrRename is returned when a single rename could not be applied
	ErrRename = errors.New("rename failed")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client lists entries and applies renames to them
type Client interface {
	List(ctx context.Context) ([]Status, error)
	Rename(ctx context.Context, request RenameRequest) error
}

type RenameRequest struct {
	ID   string
	From string
	To   string
}

type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Dir  string `json:"dir"`
	Size int64  `json:"size"` // bytes
	// AddedAt is the zero time when the client does not report when the entry was added
	AddedAt time.Time `json:"addedAt"`
}

// HasAddedAt reports whether the status carries an added timestamp
func (s Status) HasAddedAt() bool {
	return !s.AddedAt.IsZero()
}
