package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDs reads person ids from args. Each argument may hold several ids
// separated by commas. Blank entries are skipped and repeated ids are kept
// once, in first-seen order.
func ParseIDs(args ...string) ([]int, error) {
	var ids []int
	seen := make(map[int]bool)
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
