package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/linger/internal/ui/style"
)

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, style.Red, style.SeverityColor(""))
	assert.Equal(t, style.Red, style.SeverityColor("error"))
	assert.Equal(t, style.Yellow, style.SeverityColor("warning"))
	assert.Equal(t, style.Slate, style.SeverityColor("info"))
}
