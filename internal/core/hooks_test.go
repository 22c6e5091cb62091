package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHookCommandsEmptyIsNoOp(t *testing.T) {
	assert.NoError(t, RunHookCommands(nil, t.TempDir(), nil, "pre-build"))
}

func TestRunHookCommandsAllSucceed(t *testing.T) {
	dir := t.TempDir()
	err := RunHookCommands([]string{"true", "true"}, dir, nil, "pre-build")
	assert.NoError(t, err)
}

func TestRunHookCommandsAggregatesFailures(t *testing.T) {
	dir := t.TempDir()
	err := RunHookCommands([]string{"false", "true", "false"}, dir, nil, "post-build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "errors occurred")
}

func TestRunHookCommandsUnparseableCommandIsReportedNotFatalPanic(t *testing.T) {
	dir := t.TempDir()
	err := RunHookCommands([]string{"echo 'unterminated"}, dir, nil, "pre-build")
	require.Error(t, err)
}
