package repositories

import "strings"

// joinSets joins UPDATE set clauses
func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}
