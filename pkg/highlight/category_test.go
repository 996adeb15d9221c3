package highlight

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryNames(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	c, err := ParseCategory(" ClassName ")
	require.NoError(t, err)
	assert.Equal(t, ClassName, c)

	_, err = ParseCategory("bogus")
	assert.Error(t, err)
	assert.Equal(t, "category(-1)", Category(-1).String())
}

func TestRangeJSON(t *testing.T) {
	b, err := json.Marshal(Range{Start: 3, Length: 2, Category: Keyword})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":3,"length":2,"category":"keyword"}`, string(b))

	var r Range
	require.NoError(t, json.Unmarshal([]byte(`{"start":1,"length":4,"category":"class_name"}`), &r))
	assert.Equal(t, Range{Start: 1, Length: 4, Category: ClassName}, r)
	assert.Equal(t, 5, r.End())
}
