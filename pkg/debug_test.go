package slang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugStreamDisabled(t *testing.T) {
	var buf bytes.Buffer
	d := &DebugStream{Out: &buf}

	d.Printf("[DEBUG] %s\n", "nope")
	d.Println("[DEBUG] also nope")

	assert.Empty(t, buf.String())
}

func TestDebugStreamEnabled(t *testing.T) {
	var buf bytes.Buffer
	d := &DebugStream{Enabled: true, Out: &buf}

	d.Printf("[DEBUG] %s\n", "yes")

	assert.Equal(t, "[DEBUG] yes\n", buf.String())
}
