package chart

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csdesk/internal/api"
)

func TestWriteSalesTrend(t *testing.T) {
	dir := t.TempDir()
	points := []api.SalesPoint{
		{Date: "2025-08-01", Amount: 120000},
		{Date: "2025-08-02", Amount: 98000},
		{Date: "2025-08-03", Amount: 143500},
	}

	path, err := WriteSalesTrend(dir, points)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, "2025-08-02")
	assert.Contains(t, html, "143500")
}

func TestWriteSalesTrendRejectsEmptySeries(t *testing.T) {
	_, err := WriteSalesTrend(t.TempDir(), nil)
	require.Error(t, err)
}
