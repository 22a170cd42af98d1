// Package markdown imports bilingual blog posts from markdown files. A post
// is a pair of files, <slug>.en.md and <slug>.ur.md, each with YAML front
// matter and a markdown body.
package markdown
