package conf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("# roles\nA0\n\nA1\n  AM-TMP  \n#A2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A0", "A1", "AM-TMP"}, c.Values)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("does/not/exist.conf")
	assert.Error(t, err)
}
