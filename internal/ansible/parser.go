package ansible

import (
	"strings"

	"github.com/winauto/bridge/internal/models"
)

// ParseHostResults extracts per-host outcomes from the engine's stdout using
// its task result markers (ok/fatal/failed/unreachable/changed).
func ParseHostResults(output string, targets []string) []models.HostResult {
	results := make([]models.HostResult, 0, len(targets))
	lines := strings.Split(output, "\n")

	for _, target := range targets {
		results = append(results, models.HostResult{
			Host:    target,
			Status:  hostStatus(output, target),
			Output:  hostOutput(lines, target, targets),
			Changed: strings.Contains(output, "changed: ["+target+"]"),
		})
	}

	return results
}

func hostStatus(output, target string) models.HostStatus {
	switch {
	case strings.Contains(output, "ok: ["+target+"]"):
		return models.HostStatusSuccess
	case strings.Contains(output, "fatal: ["+target+"]"),
		strings.Contains(output, "failed: ["+target+"]"):
		return models.HostStatusFailed
	case strings.Contains(output, "unreachable: ["+target+"]"):
		return models.HostStatusUnreachable
	default:
		return models.HostStatusUnknown
	}
}

// hostOutput collects the lines following a marker for target, stopping at
// the first marker that belongs to a different target.
func hostOutput(lines []string, target string, targets []string) string {
	var b strings.Builder
	capturing := false

	for _, line := range lines {
		switch {
		case strings.Contains(line, "["+target+"]"):
			capturing = true
		case capturing && belongsToOther(line, target, targets):
			capturing = false
		case capturing:
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String())
}

func belongsToOther(line, target string, targets []string) bool {
	for _, other := range targets {
		if other != target && strings.Contains(line, "["+other+"]") {
			return true
		}
	}
	return false
}
