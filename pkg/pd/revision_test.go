package pd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRevision(t *testing.T) {
	testcases := []struct {
		input    string
		expected Revision
		str      string
	}{
		{"2.0", Rev20, "2.0"},
		{"3.0\n", Rev30, "3.0"},
		{"3.1", Rev31, "3.1"},
		{"3.1.2", 0x0312, "3.1.2"},
		{"3", Rev30, "3.0"},
		{"0.0", RevisionUnknown, "Unknown"},
	}

	for _, tc := range testcases {
		rev, err := ParseRevision(tc.input)
		require.NoError(t, err, "parsing %q", tc.input)
		assert.Equal(t, tc.expected, rev, "parsing %q", tc.input)
		assert.Equal(t, tc.str, rev.String())
	}

	for _, bad := range []string{"", "x.y", "3.16", "1.2.3.4", "300"} {
		_, err := ParseRevision(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestRevisionFromBCD(t *testing.T) {
	assert := require.New(t)
	rev := RevisionFromBCD(0x0300)
	assert.Equal(Rev30, rev)
	assert.Equal(uint8(3), rev.Major())
	assert.Equal(uint8(0), rev.Minor())

	rev = RevisionFromBCD(0x0310)
	assert.Equal(Rev31, rev)
	assert.Equal(uint8(1), rev.Minor())
	assert.Equal(uint8(0), rev.Sub())

	assert.Equal(RevisionUnknown, RevisionFromBCD(0))
	assert.Equal("Unknown", RevisionFromBCD(0).String())
}

func TestRevisionLayout(t *testing.T) {
	testcases := []struct {
		rev      Revision
		expected Revision
	}{
		{RevisionUnknown, Rev20},
		{0x0100, Rev20},
		{Rev20, Rev20},
		{Rev30, Rev30},
		{0x0302, Rev30},
		{Rev31, Rev31},
		{0x0320, Rev31},
		{0x0400, Rev31},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, tc.rev.Layout(), "layout of %s", tc.rev)
	}
}
