package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/parser"
	"github.com/oapi-codegen/nullable"
)

const (
	maxParseNames = 1000
	maxBodyBytes  = 1 << 20
)

var (
	errMissingName = errors.New("name query parameter is required")
	errNoNames     = errors.New("names must not be empty")
)

// ParsedName is the parse outcome for one raw name. Canonical is null when the name could not be parsed.
type ParsedName struct {
	Name      string                           `json:"name"`
	Canonical nullable.Nullable[string]        `json:"canonical"`
	Result    nullable.Nullable[parser.Result] `json:"result"`
}

type ParseRequest struct {
	Names []string `json:"names"`
}

// parseName parses raw, reusing earlier results for repeated names
func (s Server) parseName(raw string) ParsedName {
	return s.parsed.GetOrSet(raw, func() ParsedName {
		return newParsedName(raw)
	})
}

func newParsedName(raw string) ParsedName {
	parsed := ParsedName{
		Name:      raw,
		Canonical: nullable.NewNullNullable[string](),
		Result:    nullable.NewNullNullable[parser.Result](),
	}

	result, ok := parser.Parse(raw)
	if !ok {
		return parsed
	}

	parsed.Canonical = nullable.NewNullableWithValue(result.Canonical())
	parsed.Result = nullable.NewNullableWithValue(result)
	return parsed
}

// ParseName parses the name query parameter
func (s Server) ParseName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		name := r.URL.Query().Get("name")
		if name == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingName)
			return
		}

		err := writeResponse(w, http.StatusOK, GenericResponse{Response: s.parseName(name)})
		if err != nil {
			log.Errorw("failed to write response", "error", err)
		}
	}
}

// ParseNames parses every name in the request body, preserving order
func (s Server) ParseNames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request ParseRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&request)
		if err != nil {
			log.Debugw("failed to decode request", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		if len(request.Names) == 0 {
			writeErrorResponse(w, http.StatusBadRequest, errNoNames)
			return
		}
		if len(request.Names) > maxParseNames {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("at most %d names can be parsed at once", maxParseNames))
			return
		}

		parsed := make([]ParsedName, 0, len(request.Names))
		for _, name := range request.Names {
			parsed = append(parsed, s.parseName(name))
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: parsed})
		if err != nil {
			log.Errorw("failed to write response", "error", err)
		}
	}
}
