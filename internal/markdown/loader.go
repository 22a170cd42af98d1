package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
)

// LoaderConfig configures how post files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader reads post files from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{fs: filesystem, pattern: pattern, recursive: cfg.Recursive}
}

// LoadFile reads and parses a single language file.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}
	doc, err := BuildDocument(name, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory parses every post file under dir. Files whose names carry
// no language suffix are returned in ignored.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) (docs []*Document, ignored []string, err error) {
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if match, _ := path.Match(l.pattern, path.Base(p)); !match {
			return nil
		}
		if _, _, ok := ParseFilename(p); !ok {
			ignored = append(ignored, p)
			return nil
		}
		doc, err := l.LoadFile(ctx, p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].FilePath < docs[j].FilePath })
	sort.Strings(ignored)
	return docs, ignored, nil
}

// Pair groups the two language files of one post.
type Pair struct {
	Slug string
	EN   *Document
	UR   *Document
}

// Missing lists the languages the pair has no file for.
func (p Pair) Missing() []content.Lang {
	var missing []content.Lang
	if p.EN == nil {
		missing = append(missing, content.LangEN)
	}
	if p.UR == nil {
		missing = append(missing, content.LangUR)
	}
	return missing
}

// Complete reports whether both language files are present.
func (p Pair) Complete() bool { return p.EN != nil && p.UR != nil }

// PairDocuments groups documents by file slug, sorted by slug. When two
// files claim the same slug and language the later path wins.
func PairDocuments(docs []*Document) []Pair {
	index := map[string]*Pair{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		pair, ok := index[doc.Slug]
		if !ok {
			pair = &Pair{Slug: doc.Slug}
			index[doc.Slug] = pair
		}
		if doc.Lang == content.LangUR {
			pair.UR = doc
		} else {
			pair.EN = doc
		}
	}
	pairs := make([]Pair, 0, len(index))
	for _, pair := range index {
		pairs = append(pairs, *pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Slug < pairs[j].Slug })
	return pairs
}
