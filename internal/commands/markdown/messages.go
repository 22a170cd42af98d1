package markdowncmd

import (
	"io/fs"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-bilingual-cms/internal/markdown"
)

const importMarkdownMessageType = "cms.markdown.import"

// ImportMarkdownCommand imports every <slug>.en.md / <slug>.ur.md pair under
// Dir as a blog post. Dir is relative to the configured content root.
type ImportMarkdownCommand struct {
	Dir string `json:"dir"`
	// DryRun reports what would change without writing records.
	DryRun bool `json:"dry_run,omitempty"`
	// Report receives the per-pair outcome when set.
	Report *markdown.Report `json:"-"`
}

// Type implements command.Message.
func (ImportMarkdownCommand) Type() string { return importMarkdownMessageType }

// Validate ensures Dir is a usable path inside the content root.
func (cmd ImportMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.By(func(value any) error {
			dir := strings.TrimSpace(value.(string))
			if dir == "" {
				return validation.NewError("cms.markdown.import.dir_required", "dir is required")
			}
			if !fs.ValidPath(dir) {
				return validation.NewError("cms.markdown.import.dir_invalid", "dir must be a relative path inside the content root")
			}
			return nil
		})),
	)
}
