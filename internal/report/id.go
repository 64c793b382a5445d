package report

import (
	"fmt"
	"strings"
)

// NewID builds a report identifier: the source prefix followed by the
// zero-padded count of archived reports already carrying that prefix.
// Identifiers are dense per prefix, not globally unique.
func NewID(source SourceKind, existingCount int) string {
	return fmt.Sprintf("%s%02d", source.Prefix(), existingCount)
}

// CountPrefix counts the ids that carry source's prefix.
func CountPrefix(ids []string, source SourceKind) int {
	n := 0
	for _, id := range ids {
		if strings.HasPrefix(id, source.Prefix()) {
			n++
		}
	}
	return n
}
