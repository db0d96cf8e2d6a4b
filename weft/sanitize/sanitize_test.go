/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sanitize

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Org1", "Org1"},
		{"traversal", "../../etc", "etc"},
		{"separators", "a/b\\c", "abc"},
		{"reserved chars", `pro:file*na?me`, "profilename"},
		{"dot file", ".hidden", "hidden"},
		{"spaces kept inside", "org one", "org one"},
		{"null byte", "a\x00b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "\\")
			assert.False(t, strings.HasPrefix(got, "."))
		})
	}
}

func TestSegmentDeterministic(t *testing.T) {
	a, err := Segment("peer0.org1.example.com")
	require.NoError(t, err)
	b, err := Segment("peer0.org1.example.com")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSegmentRejects(t *testing.T) {
	for _, input := range []string{"", "..", "///", ". .", "\x00"} {
		_, err := Segment(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrInvalidPathSegment))
	}
}

func TestSegmentRejectsReservedNames(t *testing.T) {
	for _, input := range []string{"CON", "con", "Nul", "COM1", "lpt9", "con.profile"} {
		_, err := Segment(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrInvalidPathSegment))
	}

	// names merely containing a reserved word stay usable
	for _, input := range []string{"console", "com10", "nularbor", "org1.con.example"} {
		got, err := Segment(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, input, got)
	}
}
