package server

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// parseLimit extracts and validates the limit query param
func parseLimit(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		return 0, fmt.Errorf("invalid limit parameter: must be an integer between 1 and %d", maxHistoryLimit)
	}

	return limit, nil
}
