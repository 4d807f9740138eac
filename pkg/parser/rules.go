package parser

import "regexp"

// resolutionRule pairs a compiled regex with the label it produces. Rules are
// evaluated in order by classifyResolution; first match wins.
type resolutionRule struct {
	Name    string
	Pattern *regexp.Regexp
	Label   func(name string, matches []string) Resolution
}

var (
	bdRemuxRegex = regexp.MustCompile(`(?i)bd[._\- ]?remux`)

	hdrRegex = regexp.MustCompile(`(?i)hdr|dolby[._\- ]?vision|(?:^|[^a-z0-9])dv(?:[^a-z0-9]|$)`)
)

func label(r Resolution) func(string, []string) Resolution {
	return func(string, []string) Resolution {
		return r
	}
}

// remuxLabel distinguishes UHD and BD remuxes from a plain remux
func remuxLabel(name string, matches []string) Resolution {
	switch {
	case matches[1] != "":
		return ResolutionUHDRemux
	case bdRemuxRegex.MatchString(name):
		return ResolutionBDRemux
	default:
		return ResolutionRemux
	}
}

// resolutionRules is ordered: remux before any plain resolution, higher resolutions first
var resolutionRules = []resolutionRule{
	{
		Name:    "remux",
		Pattern: regexp.MustCompile(`(?i)(uhd)?[._\- ]?remux`),
		Label:   remuxLabel,
	},
	{
		Name:    "2160p",
		Pattern: regexp.MustCompile(`(?i)2160p|4k|uhd`),
		Label:   label(Resolution4K),
	},
	{
		Name:    "1080p",
		Pattern: regexp.MustCompile(`(?i)1080[pi]`),
		Label:   label(Resolution1080p),
	},
	{
		Name:    "720p",
		Pattern: regexp.MustCompile(`(?i)720[pi]`),
		Label:   label(Resolution720p),
	},
	{
		Name:    "480p",
		Pattern: regexp.MustCompile(`(?i)480[pi]`),
		Label:   label(Resolution480p),
	},
}

func classifyResolution(name string) Resolution {
	for _, rule := range resolutionRules {
		m := rule.Pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		return rule.Label(name, m)
	}

	return ResolutionNone
}

func detectHDR(name string) bool {
	return hdrRegex.MatchString(name)
}
