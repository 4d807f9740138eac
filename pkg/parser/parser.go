package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolution is the normalized resolution or remux class of a release
type Resolution string

const (
	ResolutionNone     Resolution = ""
	Resolution480p     Resolution = "480p"
	Resolution720p     Resolution = "720p"
	Resolution1080p    Resolution = "1080p"
	Resolution4K       Resolution = "4K"
	ResolutionRemux    Resolution = "Remux"
	ResolutionBDRemux  Resolution = "BDRemux"
	ResolutionUHDRemux Resolution = "UHDRemux"
)

var (
	videoExtensions = map[string]struct{}{
		"mkv":  {},
		"mp4":  {},
		"avi":  {},
		"mov":  {},
		"wmv":  {},
		"flv":  {},
		"webm": {},
		"mpg":  {},
		"mpeg": {},
		"m4v":  {},
		"ts":   {},
		"m2ts": {},
	}

	yearRegex          = regexp.MustCompile(`\(?((?:19|20)\d{2})\)?`)
	separatorRegex     = regexp.MustCompile(`[._]`)
	whitespaceRegex    = regexp.MustCompile(`[\s\p{Z}]+`)
	danglingParenRegex = regexp.MustCompile(`[\s\p{Z}]*\([\s\p{Z}]*$`)
)

// Result holds the fields extracted from a raw release name
type Result struct {
	Title      string     `json:"title"`
	Year       string     `json:"year"`
	Extension  string     `json:"extension"`
	Resolution Resolution `json:"resolution"`
	HDR        bool       `json:"hdr"`
}

// Canonical assembles the normalized file name for the result.
// An empty title is kept as is, which yields a leading space before the year.
func (r Result) Canonical() string {
	hdr := ""
	if r.HDR {
		hdr = " HDR"
	}

	switch {
	case r.Resolution != ResolutionNone:
		return fmt.Sprintf("%s (%s) - %s%s.%s", r.Title, r.Year, r.Resolution, hdr, r.Extension)
	case r.HDR:
		return fmt.Sprintf("%s (%s)%s.%s", r.Title, r.Year, hdr, r.Extension)
	default:
		return fmt.Sprintf("%s (%s).%s", r.Title, r.Year, r.Extension)
	}
}

// Parse extracts a Result from a raw file or torrent name.
// ok is false when the name has no recognized video extension or no release year.
func Parse(raw string) (result Result, ok bool) {
	name, ext, ok := splitExtension(raw)
	if !ok {
		return Result{}, false
	}

	loc := yearRegex.FindStringSubmatchIndex(name)
	if loc == nil {
		return Result{}, false
	}

	return Result{
		Title:      cleanTitle(name[:loc[0]]),
		Year:       name[loc[2]:loc[3]],
		Extension:  ext,
		Resolution: classifyResolution(name),
		HDR:        detectHDR(name),
	}, true
}

// Name returns the canonical name for raw, if it can be parsed
func Name(raw string) (string, bool) {
	result, ok := Parse(raw)
	if !ok {
		return "", false
	}

	return result.Canonical(), true
}

// IsVideoExtension reports whether ext, with or without a leading dot, is a supported video container
func IsVideoExtension(ext string) bool {
	_, ok := videoExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

func splitExtension(raw string) (name, ext string, ok bool) {
	i := strings.LastIndex(raw, ".")
	if i < 0 {
		return "", "", false
	}

	ext = raw[i+1:]
	if !IsVideoExtension(ext) {
		return "", "", false
	}

	return raw[:i], ext, true
}

func cleanTitle(title string) string {
	title = separatorRegex.ReplaceAllString(title, " ")
	title = strings.TrimSpace(whitespaceRegex.ReplaceAllString(title, " "))
	return strings.TrimSpace(danglingParenRegex.ReplaceAllString(title, ""))
}
