package crawl_test

import (
	"testing"

	"github.com/fwojciec/novelctx/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://ncode.syosetu.com/n1234ab/128/"
		result := crawl.TruncateURL(url, 16)
		assert.Equal(t, "...1234ab/128/", result[:14])
		assert.Len(t, result, 16)
	})

	t.Run("returns empty string for non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://x.com", 0))
	})
}

func TestFormatChars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 chars", crawl.FormatChars(512))
	assert.Equal(t, "12.3k chars", crawl.FormatChars(12_345))
	assert.Equal(t, "2.5M chars", crawl.FormatChars(2_500_000))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.ContentHash("吾輩は猫である。"), crawl.ContentHash("吾輩は猫である。"))
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.ContentHash("content a"), crawl.ContentHash("content b"))
	})

	t.Run("returns fixed width hex string", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]{16}$`, crawl.ContentHash(""))
	})
}
