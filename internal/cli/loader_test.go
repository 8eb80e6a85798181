package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift-glide/questdb-go/queryenc"
)

func encodeDoc(t *testing.T, yamlText string) string {
	t.Helper()
	doc, err := ParseParams([]byte(yamlText))
	require.NoError(t, err)
	out, err := queryenc.NewEncoder().Encode(doc)
	require.NoError(t, err)
	return out
}

func TestParamDocScalars(t *testing.T) {
	out := encodeDoc(t, "a: hello\nb: 7\nc: 1.5\nd: true\n")
	assert.Equal(t, "a=hello&b=7&c=1.5&d=true", out)
}

func TestParamDocNullSkipped(t *testing.T) {
	out := encodeDoc(t, "a: ~\nb: kept\n")
	assert.Equal(t, "b=kept", out)
}

func TestParamDocNestedMapping(t *testing.T) {
	out := encodeDoc(t, "outer:\n  inner: 1\n")
	assert.Equal(t, "outer[inner]=1", out)
}

func TestParamDocNestedSequences(t *testing.T) {
	out := encodeDoc(t, "a:\n  - [1, 2]\n  - [3]\n")
	assert.Equal(t, "a[][]=1&a[][]=2&a[][]=3", out)
}

func TestParamDocSequenceOfMappings(t *testing.T) {
	out := encodeDoc(t, "a:\n  - b: 1\n  - b: 2\n")
	assert.Equal(t, "a[0][b]=1&a[1][b]=2", out)
}

func TestParamDocNotAMapping(t *testing.T) {
	_, err := ParseParams([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
}
