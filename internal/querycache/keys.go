package querycache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operation name prefixes shared by keys and their invalidation.
const (
	OpProducts   = "products"
	OpProduct    = "product"
	OpChangeLogs = "change-logs"
	OpCategories = "categories"
)

// Key builds the normalized cache key for an operation. Parameters are
// JSON-encoded; struct field order is fixed, so identical parameters
// always produce an identical key.
func Key(op string, params ...any) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, op)
	for _, p := range params {
		buf, err := json.Marshal(p)
		if err != nil {
			// Parameter bags are plain structs; this only trips on a
			// programming error.
			panic(fmt.Sprintf("querycache: unencodable key parameter: %v", err))
		}
		parts = append(parts, string(buf))
	}

	return strings.Join(parts, ":")
}
