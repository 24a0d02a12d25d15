package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSelfTests(t *testing.T) {
	results := RunSelfTests()
	require.Len(t, results, 6)

	wantExpected := []string{
		"Name is required",
		"Invalid email format",
		"Password must be at least 8 characters long",
		"Password must contain at least one special character",
		"Passwords do not match",
		"Success",
	}

	for i, r := range results {
		assert.Equal(t, i+1, r.Index)
		assert.Equal(t, wantExpected[i], r.Expected)
		assert.Equal(t, r.Expected, r.Actual, "fixture %d", r.Index)
		assert.True(t, r.Passed, "fixture %d", r.Index)
	}
}

func TestRunSelfTests_IsRepeatable(t *testing.T) {
	assert.Equal(t, RunSelfTests(), RunSelfTests())
}
