package version

import (
	"fmt"
	"strings"
)

type semver struct {
	major, minor, patch int
	pre                 string
}

func parse(s string) (v semver, err error) {
	core, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	if _, err = fmt.Sscanf(core, "%d.%d.%d", &v.major, &v.minor, &v.patch); err != nil {
		return v, fmt.Errorf("parse version %q: %w", s, err)
	}

	v.pre = pre
	return v, nil
}

// Compare compares two major.minor.patch versions, with or without a leading "v".
// A pre-release ("1.2.0-rc.1") is older than its release. Pre-release tags compare as strings.
// It returns 1 if a is newer, -1 if b is newer and 0 if they are equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, d := range []int{av.major - bv.major, av.minor - bv.minor, av.patch - bv.patch} {
		switch {
		case d > 0:
			return 1, nil
		case d < 0:
			return -1, nil
		}
	}

	switch {
	case av.pre == bv.pre:
		return 0, nil
	case av.pre == "":
		return 1, nil
	case bv.pre == "":
		return -1, nil
	case av.pre > bv.pre:
		return 1, nil
	default:
		return -1, nil
	}
}
