package InputParameters

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckParameters(t *testing.T) {
	{ // Structured grid
		fileInput := []byte(`
Title: Unit cube
Extents: [2, 2, 2]
Lengths: [1., 1., 2.]
Tolerance: 1.e-9
RandomAccess: true
Codims: [3, 1] # vertices and faces
`)
		var input CheckParameters
		require.NoError(t, input.Parse(fileInput))
		assert.True(t, input.Structured())
		assert.Equal(t, []int{2, 2, 2}, input.Extents)
		assert.Equal(t, []float64{1, 1, 2}, input.Lengths)
		assert.Equal(t, 1.e-9, input.Tolerance)
		assert.True(t, input.RandomAccess)
		assert.False(t, input.LevelIndex)
		assert.Equal(t, []int{3, 1}, input.Codims)
		input.Print()
	}
	{ // Grid file
		fileInput := []byte(`
Title: Two hexahedra
GridFile: twohex.msh
LevelIndex: true
EnableLevelIntersectionCheck: true
`)
		var input CheckParameters
		require.NoError(t, input.Parse(fileInput))
		assert.False(t, input.Structured())
		assert.Equal(t, "twohex.msh", input.GridFile)
		assert.True(t, input.LevelIndex)
		assert.True(t, input.EnableLevelIntersectionCheck)
	}
	{ // Invalid parameters
		var input CheckParameters
		assert.Error(t, input.Parse([]byte("Extents: [2, 2]\nLengths: [1.]\n")))
		assert.Error(t, input.Parse([]byte("Tolerance: -1.\n")))
		assert.Error(t, input.Parse([]byte("Extents: two\n")))
	}
	{ // From a file
		dir, err := ioutil.TempDir("", "checkparams")
		require.NoError(t, err)
		defer os.RemoveAll(dir)
		fname := filepath.Join(dir, "check.yaml")
		require.NoError(t, ioutil.WriteFile(fname, []byte("Title: file\nExtents: [3]\n"), 0644))
		cp, err := ReadCheckParameters(fname)
		require.NoError(t, err)
		assert.Equal(t, "file", cp.Title)
		assert.Equal(t, []int{3}, cp.Extents)
		_, err = ReadCheckParameters(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	}
}
