package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentFile(t *testing.T, dir, name, data string) {
	t.Helper()
	path := filepath.Join(dir, "articles", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestLoadArticles(t *testing.T) {
	t.Run("Should parse front matter and body", func(t *testing.T) {
		dir := t.TempDir()
		writeContentFile(t, dir, "first-post.md", `---
title: First Post
summary: A short summary
tags:
  - go
  - web
published_at: 2024-05-01T00:00:00Z
---

## Hello

world
`)

		articles, err := LoadArticles(dir)
		require.NoError(t, err)
		require.Len(t, articles, 1)

		a := articles[0]
		assert.Equal(t, "first-post", a.Slug)
		assert.Equal(t, "First Post", a.Title)
		assert.Equal(t, []string{"go", "web"}, a.Tags)
		assert.Equal(t, "## Hello\n\nworld", a.Body)
		assert.Equal(t, 2024, a.PublishedAt.Year())
	})

	t.Run("Should prefer an explicit slug", func(t *testing.T) {
		dir := t.TempDir()
		writeContentFile(t, dir, "nested/whatever.md", `---
title: Renamed
slug: custom-slug
---
body
`)

		articles, err := LoadArticles(dir)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "custom-slug", articles[0].Slug)
	})

	t.Run("Should fail on a file without front matter", func(t *testing.T) {
		dir := t.TempDir()
		writeContentFile(t, dir, "bare.md", "just markdown, no header\n")

		_, err := LoadArticles(dir)
		assert.Error(t, err)
	})

	t.Run("Should return no articles for an empty directory", func(t *testing.T) {
		articles, err := LoadArticles(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, articles)
	})
}
