// Package cli wires the cobra command tree for the haiku binary: tree-wide
// local/remote dependency conversion, per-project install and update through
// poetry, project listing with constraint drift checks, dependency graph
// inspection, and config management.
package cli
