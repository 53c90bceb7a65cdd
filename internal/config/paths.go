package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath expands $VARS and a leading ~ in p. A relative result is
// joined to root unless root is empty.
func resolvePath(p, root string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if rest, ok := homeRelative(p); ok {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, rest)
		}
	}
	if root != "" && !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return p
}

// homeRelative reports whether p is "~" or starts with "~/" and returns the
// part after the home marker.
func homeRelative(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if rest, ok := strings.CutPrefix(p, "~"); ok && len(rest) > 0 && os.IsPathSeparator(rest[0]) {
		return rest[1:], true
	}
	return "", false
}
