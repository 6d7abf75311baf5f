//go:build !integration

package constants

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocLink(t *testing.T) {
	got := DocLink("changelog_validation.html", "no-changelog-found")
	assert.Equal(t, "Read more about this error and potential solutions at "+DocsBaseURL+"/changelog_validation.html#no-changelog-found", got)
}

func TestDefaultResultsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("Library", "ValidationSuiteResults"), DefaultResultsDir)
}
