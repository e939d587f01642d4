package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSubEntities(t *testing.T) {
	{ // All topologies up to three dimensions, then the Dune tables
		var buf bytes.Buffer
		require.NoError(t, RunSubEntities(&buf, &SubEntitiesModel{All: true, MaxDim: 3}))
		assert.Contains(t, buf.String(), "Number of errors: 0")
		assert.Contains(t, buf.String(), "Dune numbering tables are consistent with the generic numbering")
	}
	{ // Prism
		var buf bytes.Buffer
		require.NoError(t, RunSubEntities(&buf, &SubEntitiesModel{ID: 4, Dim: 3, Verbose: true}))
		assert.Contains(t, buf.String(), "SubEntityNumber< ")
	}
	{ // Id out of range
		var buf bytes.Buffer
		assert.Error(t, RunSubEntities(&buf, &SubEntitiesModel{ID: 8, Dim: 3}))
		assert.Empty(t, buf.String())
	}
}
