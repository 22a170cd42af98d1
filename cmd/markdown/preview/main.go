package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-bilingual-cms/internal/markdown"
)

var output io.Writer = os.Stdout

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("markdown preview: %v", err)
	}
}

func runPreview(args []string) error {
	flags := flag.NewFlagSet("markdown-preview", flag.ContinueOnError)
	contentDir := flags.String("content-dir", "content/posts", "Path to the markdown content root")
	pattern := flags.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	slug := flags.String("slug", "", "File slug of the post to preview (wells for wells.en.md)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*slug) == "" {
		return fmt.Errorf("--slug is required")
	}
	return preview(context.Background(), os.DirFS(*contentDir), *pattern, *slug)
}

func preview(ctx context.Context, fsys fs.FS, pattern, slug string) error {
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{Pattern: pattern, Recursive: true})
	docs, _, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return fmt.Errorf("load markdown: %w", err)
	}

	for _, pair := range markdown.PairDocuments(docs) {
		if pair.Slug != slug {
			continue
		}
		for _, doc := range []*markdown.Document{pair.EN, pair.UR} {
			if doc != nil {
				fmt.Fprintf(output, "%s: %s (checksum %x)\n", doc.Lang, doc.FilePath, doc.Checksum)
			}
		}
		if missing := pair.Missing(); len(missing) > 0 {
			return fmt.Errorf("post %s is missing %v", slug, missing)
		}
		post, err := markdown.BuildBlogPost(pair)
		if err != nil {
			return err
		}
		fmt.Fprintln(output)
		enc := json.NewEncoder(output)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(post)
	}
	return fmt.Errorf("no markdown files found for %s", slug)
}
