package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kasuboski/renamez/pkg/storage/mocks"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type response struct {
	Error    string          `json:"error"`
	Response json.RawMessage `json:"response"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestServer_Healthz(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := Server{baseLogger: zap.NewNop().Sugar()}

		req, err := http.NewRequest("GET", "/healthz", nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()

		handler := s.Healthz()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "application/json", rr.Header().Get("content-type"))

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)

		assert.NoError(t, err)
		assert.Equal(t, "ok", response.Response)
	})
}

func TestServer_ParseName(t *testing.T) {
	s := New(zap.NewNop().Sugar(), nil)
	handler := s.Handler()

	t.Run("parseable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=The.Matrix.1999.1080p.BluRay.mkv", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(decode(t, rr).Response, &got))
		assert.Equal(t, "The.Matrix.1999.1080p.BluRay.mkv", got["name"])
		assert.Equal(t, "The Matrix (1999) - 1080p.mkv", got["canonical"])
		assert.Equal(t, map[string]any{
			"title":      "The Matrix",
			"year":       "1999",
			"extension":  "mkv",
			"resolution": "1080p",
			"hdr":        false,
		}, got["result"])
	})

	t.Run("unparseable is null", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=random_clip.mkv", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"name":"random_clip.mkv","canonical":null,"result":null}`, string(decode(t, rr).Response))
	})

	t.Run("repeated names are cached", func(t *testing.T) {
		s := New(zap.NewNop().Sugar(), nil)
		handler := s.Handler()

		for i := 0; i < 3; i++ {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=Old+Film+1985.avi", nil))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"canonical":"Old Film (1985).avi"`)
		}

		assert.Equal(t, 1, s.parsed.Size())
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/parse", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, errMissingName.Error(), decode(t, rr).Error)
	})
}

func TestServer_ParseNames(t *testing.T) {
	s := New(zap.NewNop().Sugar(), nil)
	handler := s.Handler()

	t.Run("keeps order", func(t *testing.T) {
		body := `{"names":["Dune.Part.Two.2024.2160p.HDR.mkv","notes.txt","Heat (1995) - Remux.mkv"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got []ParsedName
		require.NoError(t, json.Unmarshal(decode(t, rr).Response, &got))
		require.Len(t, got, 3)

		canonical, err := got[0].Canonical.Get()
		require.NoError(t, err)
		assert.Equal(t, "Dune Part Two (2024) - 4K HDR.mkv", canonical)

		assert.Equal(t, "notes.txt", got[1].Name)
		assert.True(t, got[1].Canonical.IsNull())

		canonical, err = got[2].Canonical.Get()
		require.NoError(t, err)
		assert.Equal(t, "Heat (1995) - Remux.mkv", canonical)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"names":`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decode(t, rr).Error, "invalid request body")
	})

	t.Run("no names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"names":[]}`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, errNoNames.Error(), decode(t, rr).Error)
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/parse", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestServer_ListHistory(t *testing.T) {
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("lists renames", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenames(gomock.Any(), 2).Return([]*model.Rename{
			{ID: 2, SessionID: "s1", Source: "transmission", EntryID: "7", FromName: "a.2020.mkv", ToName: "A (2020).mkv", Edited: true, CreatedAt: &created},
			{ID: 1, SessionID: "s1", Source: "transmission", EntryID: "6", FromName: "b.2021.mkv", ToName: "B (2021).mkv"},
		}, nil)

		handler := New(zap.NewNop().Sugar(), store).Handler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=2", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got []HistoryEntry
		require.NoError(t, json.Unmarshal(decode(t, rr).Response, &got))
		require.Len(t, got, 2)
		assert.Equal(t, int32(2), got[0].ID)
		assert.Equal(t, "a.2020.mkv", got[0].From)
		assert.Equal(t, "A (2020).mkv", got[0].To)
		assert.True(t, got[0].Edited)
		require.NotNil(t, got[0].CreatedAt)
		assert.True(t, created.Equal(*got[0].CreatedAt))
		assert.Nil(t, got[1].CreatedAt)
	})

	t.Run("default limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenames(gomock.Any(), defaultHistoryLimit).Return(nil, nil)

		handler := New(zap.NewNop().Sugar(), store).Handler()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, string(decode(t, rr).Response))
	})

	t.Run("invalid limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)

		handler := New(zap.NewNop().Sugar(), store).Handler()
		for _, limit := range []string{"0", "-1", "abc", "501"} {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit="+limit, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, limit)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStorage(ctrl)
		store.EXPECT().ListRenames(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk I/O error"))

		handler := New(zap.NewNop().Sugar(), store).Handler()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("not configured", func(t *testing.T) {
		handler := New(zap.NewNop().Sugar(), nil).Handler()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestServer_RateLimit(t *testing.T) {
	handler := New(zap.NewNop().Sugar(), nil, WithRateLimit(0.001, 1)).Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=a.2020.mkv", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=a.2020.mkv", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	// probes are not limited
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_CORS(t *testing.T) {
	handler := New(zap.NewNop().Sugar(), nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parse?name=a.2020.mkv", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Serve(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(zap.NewNop().Sugar(), nil)

	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, 0)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
