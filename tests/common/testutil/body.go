//go:build unit || e2e

package testutil

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mutation edits a request body after it has been flattened to a map.
type Mutation func(m map[string]any)

// DtoMap flattens a request DTO to its wire form so cases can break single fields.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	m := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// Field sets key to value; a nil value drops the key.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
