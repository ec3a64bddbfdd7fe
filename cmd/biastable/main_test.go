package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, options{refW: 1, refH: 1, subW: 0.5, subH: 0.5, step: 0.5, radius: 1, overlapOnly: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10, "header plus every offset in a 3x3 grid")
	assert.Contains(t, lines[0], "rule")
	assert.Contains(t, buf.String(), "straddle")
	assert.Contains(t, buf.String(), "corner")
	assert.Contains(t, buf.String(), "edge")
}

func TestWriteTableSkipsSeparatedBoxes(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, options{refW: 1, refH: 1, subW: 0.5, subH: 0.5, step: 2, radius: 1, overlapOnly: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2, "only the centred offset overlaps")
}

func TestWriteTableRejectsBadOptions(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeTable(&buf, options{refW: 1, refH: 1, subW: 1, subH: 1, step: 0, radius: 1}))
}
