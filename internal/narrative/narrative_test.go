package narrative

import (
	"testing"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareerSetting(t *testing.T) {
	nc := Sample("s1")

	setting, ok := nc.CareerSetting(catalog.StageExperience)
	require.True(t, ok)
	assert.NotEmpty(t, setting)

	_, ok = nc.CareerSetting(catalog.Stage("BOGUS"))
	assert.False(t, ok)

	// An empty string counts as missing, not as a usable setting.
	nc.CareerSettings[catalog.StageLearn] = ""
	_, ok = nc.CareerSetting(catalog.StageLearn)
	assert.False(t, ok)
}

func TestSubjectBridge(t *testing.T) {
	nc := Sample("s1")

	bridge, ok := nc.SubjectBridge(catalog.SubjectScience)
	require.True(t, ok)
	assert.NotEmpty(t, bridge)

	_, ok = nc.SubjectBridge(catalog.Subject("art"))
	assert.False(t, ok)
}

func TestSampleCoversAllCatalogs(t *testing.T) {
	nc := Sample("s1")

	assert.Equal(t, "s1", nc.SessionID)
	assert.NotEmpty(t, nc.Premise)
	assert.NotEmpty(t, nc.Mission)
	assert.NotEmpty(t, nc.Companion.Teaching)

	for _, stage := range catalog.DefaultStages() {
		_, ok := nc.CareerSetting(stage)
		assert.True(t, ok, "missing career setting for %s", stage)
	}
	for _, subject := range catalog.DefaultSubjects() {
		_, ok := nc.SubjectBridge(subject)
		assert.True(t, ok, "missing subject bridge for %s", subject)
	}
}
