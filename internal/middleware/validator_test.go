package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("crash.jpg", 1024))
	assert.NoError(t, ValidateUpload("", 1024))
	assert.Error(t, ValidateUpload("crash.jpg", 0))
	assert.Error(t, ValidateUpload("crash.jpg", MaxUploadBytes+1))
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("crash.jpg"))
	assert.Error(t, ValidateFilename("../../etc/passwd"))
	assert.Error(t, ValidateFilename("a/b.png"))
	assert.Error(t, ValidateFilename("bad\nname.png"))
}
