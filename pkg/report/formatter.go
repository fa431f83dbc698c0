// Package report normalizes stored resume-analysis documents to the
// current schema. Version 1 documents are flat maps produced by the
// first analysis pipeline; version 2 wraps them in sections plus a
// report_metadata block carrying the schema version.
package report

import (
	"strings"
	"time"
)

const CurrentVersion = "2.0"

// Version extracts report_metadata.report_version, empty for v1
// documents that predate the metadata block.
func Version(payload map[string]interface{}) string {
	meta, ok := payload["report_metadata"].(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := meta["report_version"].(string)
	return v
}

// IsCurrent reports whether the document already carries a 2.x schema
// version.
func IsCurrent(payload map[string]interface{}) bool {
	return strings.HasPrefix(Version(payload), "2.")
}

// Format rebuilds the document at the current schema. Already-current
// documents pass through untouched unless forceRefresh is set. The
// second return reports whether the document changed.
func Format(payload map[string]interface{}, forceRefresh bool, now time.Time) (map[string]interface{}, bool) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	if IsCurrent(payload) && !forceRefresh {
		return payload, false
	}

	out := map[string]interface{}{
		"summary":  extractSummary(payload),
		"sections": extractSections(payload),
		"report_metadata": map[string]interface{}{
			"report_version": CurrentVersion,
			"formatted_at":   now.UTC().Format(time.RFC3339),
		},
	}
	return out, true
}

func extractSummary(payload map[string]interface{}) map[string]interface{} {
	summary := map[string]interface{}{}

	// v2 round-trip: keep the existing summary block.
	if s, ok := payload["summary"].(map[string]interface{}); ok {
		for k, v := range s {
			summary[k] = v
		}
	}

	// v1 flat keys.
	for _, key := range []string{"score", "overall_score", "headline", "target_role"} {
		if v, ok := payload[key]; ok {
			summary[normalizeSummaryKey(key)] = v
		}
	}
	if _, ok := summary["score"]; !ok {
		summary["score"] = float64(0)
	}
	return summary
}

func normalizeSummaryKey(key string) string {
	if key == "overall_score" {
		return "score"
	}
	return key
}

func extractSections(payload map[string]interface{}) []interface{} {
	// v2 round-trip.
	if s, ok := payload["sections"].([]interface{}); ok {
		return s
	}

	// v1 kept strengths and improvement lists as top-level arrays.
	sections := []interface{}{}
	for _, key := range []string{"strengths", "improvements", "keywords", "power_verbs"} {
		items, ok := payload[key].([]interface{})
		if !ok {
			continue
		}
		sections = append(sections, map[string]interface{}{
			"kind":  key,
			"items": items,
		})
	}
	return sections
}
