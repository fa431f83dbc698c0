package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formatNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestVersionDetection(t *testing.T) {
	assert.Empty(t, Version(map[string]interface{}{"score": 80}))
	assert.Empty(t, Version(map[string]interface{}{"report_metadata": "not a map"}))

	v2 := map[string]interface{}{
		"report_metadata": map[string]interface{}{"report_version": "2.0"},
	}
	assert.Equal(t, "2.0", Version(v2))
	assert.True(t, IsCurrent(v2))

	v21 := map[string]interface{}{
		"report_metadata": map[string]interface{}{"report_version": "2.1"},
	}
	assert.True(t, IsCurrent(v21))

	assert.False(t, IsCurrent(map[string]interface{}{}))
}

func TestFormatLegacyDocument(t *testing.T) {
	legacy := map[string]interface{}{
		"overall_score": float64(72),
		"headline":      "Senior Backend Engineer",
		"strengths":     []interface{}{"Go", "Distributed systems"},
		"improvements":  []interface{}{"Quantify achievements"},
	}

	out, changed := Format(legacy, false, formatNow)
	require.True(t, changed)

	meta, ok := out["report_metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, CurrentVersion, meta["report_version"])
	assert.Equal(t, "2025-06-01T12:00:00Z", meta["formatted_at"])

	summary, ok := out["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(72), summary["score"], "overall_score normalizes to score")
	assert.Equal(t, "Senior Backend Engineer", summary["headline"])

	sections, ok := out["sections"].([]interface{})
	require.True(t, ok)
	require.Len(t, sections, 2)

	first, ok := sections[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "strengths", first["kind"])
	assert.Equal(t, []interface{}{"Go", "Distributed systems"}, first["items"])
}

func TestFormatCurrentDocumentPassesThrough(t *testing.T) {
	current := map[string]interface{}{
		"summary":  map[string]interface{}{"score": float64(90)},
		"sections": []interface{}{},
		"report_metadata": map[string]interface{}{
			"report_version": "2.0",
			"formatted_at":   "2025-01-01T00:00:00Z",
		},
	}

	out, changed := Format(current, false, formatNow)
	assert.False(t, changed)
	assert.Equal(t, current, out)
}

func TestFormatForceRefreshRebuildsCurrentDocument(t *testing.T) {
	current := map[string]interface{}{
		"summary":  map[string]interface{}{"score": float64(90), "headline": "QA Lead"},
		"sections": []interface{}{map[string]interface{}{"kind": "strengths", "items": []interface{}{"Cypress"}}},
		"report_metadata": map[string]interface{}{
			"report_version": "2.0",
			"formatted_at":   "2025-01-01T00:00:00Z",
		},
	}

	out, changed := Format(current, true, formatNow)
	require.True(t, changed)

	meta := out["report_metadata"].(map[string]interface{})
	assert.Equal(t, "2025-06-01T12:00:00Z", meta["formatted_at"], "refresh restamps the document")

	summary := out["summary"].(map[string]interface{})
	assert.Equal(t, float64(90), summary["score"])
	assert.Equal(t, "QA Lead", summary["headline"])

	sections := out["sections"].([]interface{})
	require.Len(t, sections, 1)
}

func TestFormatEmptyPayload(t *testing.T) {
	out, changed := Format(nil, false, formatNow)
	require.True(t, changed)

	summary, ok := out["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), summary["score"], "missing score defaults to zero")

	sections, ok := out["sections"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, sections)
}

func TestFormatIsIdempotent(t *testing.T) {
	legacy := map[string]interface{}{
		"score":     float64(55),
		"strengths": []interface{}{"Communication"},
	}

	once, changed := Format(legacy, false, formatNow)
	require.True(t, changed)

	twice, changed := Format(once, false, formatNow.Add(time.Hour))
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}
