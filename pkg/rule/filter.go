package rule

import (
	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/regex"
	"github.com/praetorian-inc/structsrc/pkg/types"
)

// FilterConfig specifies include and exclude patterns for pair set filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching IDs included
	Exclude []string // Regex patterns - matching IDs excluded
}

var commaList = regex.MustCompile(`\s*,\s*`, regex.NoFlags)

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	parts, err := commaList.Split(patterns, 0)
	if err != nil {
		return []string{}
	}
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed, _ := regex.TrimPattern(p, ""); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to pair set IDs.
// Include is applied first, then exclude. Empty include means "include all".
// Returns error if any pattern is invalid.
func Filter(sets []*types.PairSet, config FilterConfig) ([]*types.PairSet, error) {
	if len(sets) == 0 {
		return sets, nil
	}

	include, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := make([]*types.PairSet, 0, len(sets))
	for _, ps := range sets {
		if len(include) > 0 && !matchesAny(ps.ID, include) {
			continue
		}
		if matchesAny(ps.ID, exclude) {
			continue
		}
		filtered = append(filtered, ps)
	}
	return filtered, nil
}

func compileAll(patterns []string) ([]*regex.Regexp, error) {
	var out []*regex.Regexp
	for _, pattern := range patterns {
		re, err := regex.Compile(pattern, regex.NoFlags)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid regex pattern %q", pattern)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchesAny(id string, regexes []*regex.Regexp) bool {
	for _, re := range regexes {
		if ok, _ := re.Test(id, 0); ok {
			return true
		}
	}
	return false
}
