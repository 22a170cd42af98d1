// Package http provides the HTTP adapters for the CMS.
//
// The admin API mounts under /admin/api and writes through the record
// command handlers:
//   - Collections: /{kind}, /{kind}/{id}, /{kind}/validate
//   - Singletons: /navbar, /contact, /pages/{page}
//   - Tooling: /dashboard, /import/markdown
//
// The public API mounts under /api and localizes every document to the
// visitor's language: /home, /navbar, /contact, /pages/{page}, /{kind},
// /{kind}/{slug}.
package http
