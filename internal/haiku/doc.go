// Package haiku orchestrates whole-tree conversions. It discovers every
// Poetry project under a directory, orders them by their dependency graph,
// and rewrites each manifest to local or remote dependency form, optionally
// running poetry update afterwards and emitting a YAML change report.
package haiku
