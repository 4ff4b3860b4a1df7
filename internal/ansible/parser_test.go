package ansible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winauto/bridge/internal/models"
)

const sampleOutput = `
PLAY [windows] *****************************************************************

TASK [Run PowerShell action] ***************************************************
ok: [host1]
service restarted
changed: [host1]
fatal: [host2]: FAILED! => {"msg": "access denied"}
access denied detail

PLAY RECAP *********************************************************************
`

func TestParseHostResults(t *testing.T) {
	results := ParseHostResults(sampleOutput, []string{"host1", "host2"})
	require.Len(t, results, 2)

	assert.Equal(t, "host1", results[0].Host)
	assert.Equal(t, models.HostStatusSuccess, results[0].Status)
	assert.True(t, results[0].Changed)
	assert.Contains(t, results[0].Output, "service restarted")

	assert.Equal(t, "host2", results[1].Host)
	assert.Equal(t, models.HostStatusFailed, results[1].Status)
	assert.False(t, results[1].Changed)
	assert.Contains(t, results[1].Output, "access denied detail")
}

func TestParseHostResultsUnreachable(t *testing.T) {
	output := "unreachable: [host1]: UNREACHABLE! => {\"msg\": \"winrm connection refused\"}\n"

	results := ParseHostResults(output, []string{"host1"})
	require.Len(t, results, 1)
	assert.Equal(t, models.HostStatusUnreachable, results[0].Status)
}

func TestParseHostResultsUnknown(t *testing.T) {
	results := ParseHostResults("no markers here at all\n", []string{"host1"})
	require.Len(t, results, 1)
	assert.Equal(t, models.HostStatusUnknown, results[0].Status)
	assert.Empty(t, results[0].Output)
}

func TestParseHostResultsFailedKeyword(t *testing.T) {
	results := ParseHostResults("failed: [host1] (item=x)\n", []string{"host1"})
	require.Len(t, results, 1)
	assert.Equal(t, models.HostStatusFailed, results[0].Status)
}
