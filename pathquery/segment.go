package pathquery

import (
	"regexp"
	"strconv"
	"strings"
)

var indexPattern = regexp.MustCompile(`^(.*?)\[(\d+)\]$`)

// Step is one lookup: by name, or by index when IsIndex is set.
type Step struct {
	Name    string
	Index   int
	IsIndex bool
}

func (s Step) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// ParseSegment turns one path segment into lookups. "name" is a name lookup,
// "[n]" an index lookup and "name[n]" a name lookup followed by an index
// lookup. Index digits that overflow int leave the segment as a plain name.
func ParseSegment(seg string) []Step {
	m := indexPattern.FindStringSubmatch(seg)
	if m == nil {
		return []Step{{Name: seg}}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return []Step{{Name: seg}}
	}
	if m[1] == "" {
		return []Step{{Index: n, IsIndex: true}}
	}
	return []Step{{Name: m[1]}, {Index: n, IsIndex: true}}
}

// Split breaks path on sep. The empty path has no segments.
func Split(path, sep string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, sep)
}
