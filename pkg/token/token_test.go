package token_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecmade/sitrac-api/pkg/token"
)

func TestGenerate(t *testing.T) {
	tok, err := token.Generate()
	require.NoError(t, err)

	// 32 bytes aleatorios codificados en hex.
	assert.Len(t, tok, 64)
	raw, err := hex.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestGenerate_NoRepite(t *testing.T) {
	vistos := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := token.Generate()
		require.NoError(t, err)
		assert.False(t, vistos[tok], "los tokens deben ser únicos")
		vistos[tok] = true
	}
}
