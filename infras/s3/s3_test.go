package s3

import (
	"ihome/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("Living Room.JPG")

	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Len(t, name, 36+len(".jpg"))
	assert.NotEqual(t, name, ObjectName("Living Room.JPG"))
	assert.Len(t, ObjectName("noext"), 36)
}

func TestObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"

	svc := &s3Impl{Config: cfg}

	dir, name := svc.ObjectNameFromURL("https://cdn.example.com/house/abc.png")
	assert.Equal(t, "house", dir)
	assert.Equal(t, "abc.png", name)

	dir, name = svc.ObjectNameFromURL("https://elsewhere.com/house/abc.png")
	assert.Empty(t, dir)
	assert.Empty(t, name)
}
