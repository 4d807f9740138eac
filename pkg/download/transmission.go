package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/kasuboski/renamez/pkg/logger"
	"go.uber.org/zap"
)

type TransmissionClient struct {
	http    HTTPClient
	scheme  string
	host    string
	mutex   *sync.Mutex
	session string
}

type TransmissionRequest struct {
	Arguments any           `json:"arguments"`
	Tag       *int          `json:"tag,omitempty"`
	Method    torrentMethod `json:"method"`
}

type torrentMethod string

const (
	GetTorrentMethod        torrentMethod = "torrent-get"
	RenameTorrentPathMethod torrentMethod = "torrent-rename-path"
)

const (
	rpcPath       = "/transmission/rpc"
	resultSuccess = "success"
)

func NewTransmissionClient(http HTTPClient, scheme, host string, port int) Client {
	if port != 0 {
		host = fmt.Sprintf("%s:%d", host, port)
	}

	return &TransmissionClient{
		http:    http,
		scheme:  scheme,
		host:    host,
		mutex:   new(sync.Mutex),
		session: "",
	}
}

type TransmissionTorrent struct {
	Name        string  `json:"name"`
	HashString  string  `json:"hashString"`
	DownloadDir string  `json:"downloadDir"`
	ID          int     `json:"id"`
	TotalSize   int64   `json:"totalSize"`
	PercentDone float64 `json:"percentDone"`
	AddedDate   int64   `json:"addedDate"`
}

func (t *TransmissionTorrent) ToStatus() Status {
	s := Status{
		ID:   strconv.Itoa(t.ID),
		Name: t.Name,
		Dir:  t.DownloadDir,
		Size: t.TotalSize,
	}

	if t.AddedDate > 0 {
		s.AddedAt = time.Unix(t.AddedDate, 0)
	}

	return s
}

type TransmissionListTorrentsResponse struct {
	Result    string      `json:"result"`
	Arguments TorrentList `json:"arguments"`
}

func (r TransmissionListTorrentsResponse) ToTorrents() []Status {
	torrents := make([]Status, 0, len(r.Arguments.Torrents))
	for _, t := range r.Arguments.Torrents {
		torrents = append(torrents, t.ToStatus())
	}

	return torrents
}

type TorrentList struct {
	Torrents []TransmissionTorrent `json:"torrents"`
}

var (
	torrentFields = []string{
		"addedDate",
		"downloadDir",
		"hashString",
		"id",
		"name",
		"percentDone",
		"totalSize",
	}
)

// RenamePathPayload are the arguments of a torrent-rename-path rpc call
type RenamePathPayload struct {
	IDs  []int  `json:"ids"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// RenamePathResponse represents a response from a torrent-rename-path rpc call
type RenamePathResponse struct {
	Result    string                      `json:"result"`
	Arguments RenamePathResponseArguments `json:"arguments"`
}

type RenamePathResponseArguments struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// List fetches all torrents
func (c *TransmissionClient) List(ctx context.Context) ([]Status, error) {
	arguments := make(map[string]any)
	arguments["fields"] = torrentFields

	var response TransmissionListTorrentsResponse
	err := c.call(ctx, GetTorrentMethod, arguments, &response)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if response.Result != resultSuccess {
		return nil, fmt.Errorf("%w: unexpected result: %v", ErrConnection, response.Result)
	}

	return response.ToTorrents(), nil
}

// Rename renames the top level path of a torrent
func (c *TransmissionClient) Rename(ctx context.Context, request RenameRequest) error {
	log := logger.FromCtx(ctx)

	id, err := strconv.Atoi(request.ID)
	if err != nil {
		return fmt.Errorf("%w: invalid torrent id %q: %w", ErrRename, request.ID, err)
	}

	arguments := RenamePathPayload{
		IDs:  []int{id},
		Path: request.From,
		Name: request.To,
	}

	var response RenamePathResponse
	err = c.call(ctx, RenameTorrentPathMethod, arguments, &response)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRename, err)
	}

	if response.Result != resultSuccess {
		return fmt.Errorf("%w: unexpected result: %v", ErrRename, response.Result)
	}

	log.Debugw("renamed torrent", "id", id, "from", request.From, "to", response.Arguments.Name)
	return nil
}

// call performs a single rpc round trip and decodes the response into out
func (c *TransmissionClient) call(ctx context.Context, method torrentMethod, arguments any, out any) error {
	transmissionRequest := &TransmissionRequest{
		Method:    method,
		Arguments: arguments,
	}

	b, err := json.Marshal(transmissionRequest)
	if err != nil {
		return err
	}

	url := url.URL{
		Host:   c.host,
		Scheme: c.scheme,
		Path:   rpcPath,
	}

	b, err = c.do(ctx, &url, b)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

const (
	sessionHeader = "x-transmission-session-id"
)

func (c *TransmissionClient) do(ctx context.Context, url *url.URL, body []byte, retry ...bool) ([]byte, error) {
	if c.http == nil {
		return nil, errors.New("http client is nil")
	}

	if url == nil {
		return nil, errors.New("url is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sessionHeader, c.getSessionID())

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	// need to get a new session id from the response if 409
	case http.StatusConflict:
		// prevent infinitely attempting to get a new session id if we got a session previously in this same request attempt
		if len(retry) != 0 && retry[0] {
			return nil, errors.New("session id is invalid after retry")
		}

		session := resp.Header.Get(sessionHeader)
		if session == "" {
			return nil, errors.New("session id is empty")
		}

		logger.FromCtx(ctx).Debug("refreshing transmission session", zap.String("session", session))

		// make the request again with new session
		c.setSessionID(session)
		return c.do(ctx, url, body, true)

	case http.StatusUnauthorized:
		return nil, errors.New("unauthorized: check the transmission username and password")

	case http.StatusOK:
		return io.ReadAll(resp.Body)

	default:
		return nil, fmt.Errorf("unexpected status code: %v", resp.Status)
	}
}

func (c *TransmissionClient) setSessionID(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.session = id
}

func (c *TransmissionClient) getSessionID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.session
}
