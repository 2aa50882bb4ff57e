package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey_DatePartitionedWithExtension(t *testing.T) {
	key := ObjectKey("Lecture Notes.PDF")

	now := time.Now()
	prefix := fmt.Sprintf("notes/%d/%02d/%02d/", now.Year(), now.Month(), now.Day())
	assert.True(t, strings.HasPrefix(key, prefix), "key %q should start with %q", key, prefix)
	assert.True(t, strings.HasSuffix(key, ".pdf"), "extension should be lowercased")
	assert.NotContains(t, key, "Lecture")
}

func TestObjectKey_UniquePerCall(t *testing.T) {
	assert.NotEqual(t, ObjectKey("a.pdf"), ObjectKey("a.pdf"))
}

func TestObjectKey_NoExtension(t *testing.T) {
	key := ObjectKey("README")
	assert.False(t, strings.HasSuffix(key, "."))
	assert.NotContains(t, key, "README")
}
