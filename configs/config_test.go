package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")
	cfg := Load()

	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "mock", cfg.PaymentProvider)
	assert.Equal(t, "local", cfg.MediaDriver)
	assert.Equal(t, 25.0, cfg.CoursePrice)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PUBLIC_BASE_URL", "https://api.test/")
	t.Setenv("COURSE_PRICE", "12.5")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "https://api.test", cfg.PublicBaseURL)
	assert.Equal(t, 12.5, cfg.CoursePrice)
}
