package rule

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/types"
)

// ValidatePairSet checks pair set consistency and required fields.
func ValidatePairSet(ps *types.PairSet) error {
	if ps == nil {
		return errors.New("pair set is nil")
	}

	if ps.ID == "" {
		return errors.New("pair set ID is required")
	}
	if len(ps.Pairs) == 0 {
		return errors.Newf("pair set %s must define at least one pair", ps.ID)
	}
	if ps.Escape != "" && utf8.RuneCountInString(ps.Escape) != 1 {
		return errors.Newf("pair set %s escape must be a single character, got %q", ps.ID, ps.Escape)
	}

	opens := make(map[string]bool)
	for i, p := range ps.Pairs {
		if p.Open == "" || p.Close == "" {
			return errors.Newf("pair set %s pair %d has an empty token", ps.ID, i)
		}
		if opens[p.Open] {
			return errors.Newf("pair set %s opens %q more than once", ps.ID, p.Open)
		}
		opens[p.Open] = true
		if ps.Escape != "" && (p.Open == ps.Escape || p.Close == ps.Escape) {
			return errors.Newf("pair set %s uses its escape %q as a token", ps.ID, ps.Escape)
		}
	}

	return nil
}
