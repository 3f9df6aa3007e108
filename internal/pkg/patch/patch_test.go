//go:build unit

package patch_test

import (
	"encoding/json"
	"testing"

	"tablebook/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  patch.Field[string] `json:"name"`
	Count patch.Field[int]    `json:"count"`
}

func TestField_Unmarshal(t *testing.T) {
	t.Run("absent field stays absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"count": 3}`), &p))

		assert.False(t, p.Name.Present())
		assert.True(t, p.Count.Present())
		v, ok := p.Count.Value()
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("explicit null is present but carries no value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))

		assert.True(t, p.Name.Present())
		assert.True(t, p.Name.IsNull())
		_, ok := p.Name.Value()
		assert.False(t, ok)
	})

	t.Run("value round trip", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "walk-in"}`), &p))

		v, ok := p.Name.Value()
		require.True(t, ok)
		assert.Equal(t, "walk-in", v)
	})
}

func TestApply(t *testing.T) {
	t.Run("apply overwrites only when a value is present", func(t *testing.T) {
		dst := "before"
		patch.Apply(&dst, patch.Field[string]{})
		assert.Equal(t, "before", dst)

		patch.Apply(&dst, patch.Set("after"))
		assert.Equal(t, "after", dst)
	})

	t.Run("apply ptr clears on explicit null", func(t *testing.T) {
		s := "assigned"
		dst := &s
		patch.ApplyPtr(&dst, patch.Null[string]())
		assert.Nil(t, dst)

		patch.ApplyPtr(&dst, patch.Set("again"))
		require.NotNil(t, dst)
		assert.Equal(t, "again", *dst)
	})
}

func TestCoalesce(t *testing.T) {
	v := 42
	assert.Equal(t, 42, patch.Coalesce(&v, 0))
	assert.Equal(t, 7, patch.Coalesce[int](nil, 7))
}
