package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/linger/internal/core/domain"
)

func TestCacheEntry_FreshFor(t *testing.T) {
	produced := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := domain.CacheEntry{ProducedAt: produced}

	tests := []struct {
		name      string
		fileMod   time.Time
		configMod time.Time
		want      bool
	}{
		{name: "both older", fileMod: produced.Add(-time.Minute), configMod: produced.Add(-time.Hour), want: true},
		{name: "no tool config", fileMod: produced.Add(-time.Minute), want: true},
		{name: "saved at production time", fileMod: produced, configMod: produced, want: true},
		{name: "file saved later", fileMod: produced.Add(time.Second), want: false},
		{name: "config saved later", fileMod: produced.Add(-time.Minute), configMod: produced.Add(time.Nanosecond), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entry.FreshFor(tt.fileMod, tt.configMod))
		})
	}
}
