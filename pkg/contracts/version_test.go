package contracts

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, TemplateFormat, info.TemplateFormat)
	assert.Equal(t, APIVersion, info.APIVersion)
	assert.Equal(t, fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch), Version)
}

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "Energy Report Generator v"+Version, GetVersionString())

	full := GetFullVersionString()
	assert.True(t, strings.HasPrefix(full, GetVersionString()))
	assert.Contains(t, full, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Equal(t, VersionPrerelease != "", IsPrerelease())
}
