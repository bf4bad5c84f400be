package coverage

import (
	"github.com/pkg/errors"
	"golang.org/x/tools/cover"
)

// FromProfile returns the statement coverage percentage of a Go cover profile.
func FromProfile(path string) (pct float64, err error) {
	var profiles []*cover.Profile
	profiles, err = cover.ParseProfiles(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse cover profile: %s", path)
		return pct, err
	}

	var total, covered int64
	for _, profile := range profiles {
		for _, block := range profile.Blocks {
			total += int64(block.NumStmt)
			if block.Count > 0 {
				covered += int64(block.NumStmt)
			}
		}
	}

	if total == 0 {
		err = errors.Errorf("cover profile has no statements: %s", path)
		return pct, err
	}

	pct = float64(covered) / float64(total) * 100
	return pct, err
}
