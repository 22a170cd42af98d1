package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-bilingual-cms/cmd/markdown/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	output        io.Writer = os.Stdout
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("markdown-import", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	recursive := fs.Bool("recursive", true, "Descend into sub-directories")
	driver := fs.String("storage", "", "Storage driver (memory, sqlite, postgres); defaults to CMS_STORAGE_DRIVER")
	dsn := fs.String("dsn", "", "Storage DSN for sqlite or postgres")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting content")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     *recursive,
		StorageDriver: *driver,
		StorageDSN:    *dsn,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Handler == nil {
		return fmt.Errorf("markdown import handler not configured")
	}
	defer module.Close()

	report := &markdown.Report{}
	cmd := markdowncmd.ImportMarkdownCommand{
		Dir:    *directory,
		DryRun: *dryRun,
		Report: report,
	}
	if err := module.Handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	printReport(output, report)
	return nil
}

func printReport(w io.Writer, report *markdown.Report) {
	for _, entry := range report.Entries {
		line := fmt.Sprintf("%-12s %s", entry.Outcome, entry.Slug)
		if len(entry.Missing) > 0 {
			line += fmt.Sprintf(" (missing %v)", entry.Missing)
		}
		if entry.Error != "" {
			line += ": " + entry.Error
		}
		fmt.Fprintln(w, line)
	}
	for _, name := range report.Ignored {
		fmt.Fprintf(w, "%-12s %s\n", "ignored", name)
	}
	fmt.Fprintf(w, "created=%d updated=%d incomplete=%d failed=%d\n",
		report.Count(markdown.OutcomeCreated),
		report.Count(markdown.OutcomeUpdated),
		report.Count(markdown.OutcomeIncomplete),
		report.Count(markdown.OutcomeFailed),
	)
}
