// Package fs exports stored novels as markdown files.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/novelctx"
	"gopkg.in/yaml.v3"
)

// IndexFile is the name of the novel's metadata file.
const IndexFile = "index.md"

// NovelDir converts a novel landing page URL to a directory name.
// Example: https://ncode.syosetu.com/n1234ab/ → n1234ab
func NovelDir(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", novelctx.WrapErrorf(err, novelctx.EINVALID, "invalid novel URL %q", rawURL)
	}

	name := path.Base(strings.TrimSuffix(u.Path, "/"))
	if name == "" || name == "." || name == "/" {
		return "", novelctx.Errorf(novelctx.EINVALID, "novel URL %q has no path", rawURL)
	}
	return name, nil
}

// EpisodeFile returns the file name for an episode number. Numbers are
// zero padded so files sort in reading order.
func EpisodeFile(number int) string {
	return fmt.Sprintf("%04d.md", number)
}

type novelFrontmatter struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author,omitempty"`
	Source   string   `yaml:"source"`
	Tags     []string `yaml:"tags,omitempty"`
	Episodes int      `yaml:"episodes"`
}

type episodeFrontmatter struct {
	Title     string `yaml:"title"`
	Number    int    `yaml:"number"`
	Source    string `yaml:"source"`
	Published string `yaml:"published,omitempty"`
	Fetched   string `yaml:"fetched,omitempty"`
	Chars     int    `yaml:"chars"`
	Summary   string `yaml:"summary,omitempty"`
}

// FormatNovel formats the novel index with YAML frontmatter, the synopsis
// and a table of contents.
func FormatNovel(novel *novelctx.Novel, episodes []*novelctx.Episode) (string, error) {
	var b strings.Builder
	if err := writeFrontmatter(&b, novelFrontmatter{
		Title:    novel.Title,
		Author:   novel.Author,
		Source:   novel.URL,
		Tags:     novel.Tags,
		Episodes: len(episodes),
	}); err != nil {
		return "", err
	}

	b.WriteString("# ")
	b.WriteString(novel.Title)
	b.WriteString("\n")
	if novel.Synopsis != "" {
		b.WriteString("\n")
		b.WriteString(novel.Synopsis)
		b.WriteString("\n")
	}
	if len(episodes) > 0 {
		b.WriteString("\n")
		for _, ep := range episodes {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", ep.Number, ep.Title, EpisodeFile(ep.Number))
		}
	}
	return b.String(), nil
}

// FormatEpisode formats an episode with YAML frontmatter.
func FormatEpisode(ep *novelctx.Episode) (string, error) {
	fm := episodeFrontmatter{
		Title:  ep.Title,
		Number: ep.Number,
		Source: ep.URL,
		Chars:  ep.CharCount,
	}
	if ep.PublishedAt != nil {
		fm.Published = ep.PublishedAt.Format(time.RFC3339)
	}
	if ep.FetchedAt != nil {
		fm.Fetched = ep.FetchedAt.Format("2006-01-02")
	}
	if ep.SummaryStatus == novelctx.StatusCompleted {
		fm.Summary = ep.Summary
	}

	var b strings.Builder
	if err := writeFrontmatter(&b, fm); err != nil {
		return "", err
	}
	b.WriteString(ep.Content)
	if !strings.HasSuffix(ep.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeFrontmatter(b *strings.Builder, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return novelctx.WrapErrorf(err, novelctx.EINTERNAL, "failed to encode frontmatter")
	}
	if err := enc.Close(); err != nil {
		return novelctx.WrapErrorf(err, novelctx.EINTERNAL, "failed to encode frontmatter")
	}
	b.WriteString("---\n")
	b.Write(buf.Bytes())
	b.WriteString("---\n\n")
	return nil
}

// Ensure Writer implements novelctx.Exporter at compile time.
var _ novelctx.Exporter = (*Writer)(nil)

// Writer writes novels as markdown files under a base directory, one
// directory per novel.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// ExportNovel writes the novel index and each fetched episode.
func (w *Writer) ExportNovel(ctx context.Context, novel *novelctx.Novel, episodes []*novelctx.Episode) (int, error) {
	if err := novel.Validate(); err != nil {
		return 0, err
	}

	name, err := NovelDir(novel.URL)
	if err != nil {
		return 0, err
	}
	dir := filepath.Join(w.baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, novelctx.WrapErrorf(err, novelctx.EINTERNAL, "failed to create %s", dir)
	}

	fetched := make([]*novelctx.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if ep.HasContent() {
			fetched = append(fetched, ep)
		}
	}

	index, err := FormatNovel(novel, fetched)
	if err != nil {
		return 0, err
	}
	if err := writeFile(filepath.Join(dir, IndexFile), index); err != nil {
		return 0, err
	}

	written := 0
	for _, ep := range fetched {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		content, err := FormatEpisode(ep)
		if err != nil {
			return written, err
		}
		if err := writeFile(filepath.Join(dir, EpisodeFile(ep.Number)), content); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return novelctx.WrapErrorf(err, novelctx.EINTERNAL, "failed to write %s", path)
	}
	return nil
}
