// Package manifest handles parsing and validation of Poetry pyproject.toml
// manifests. It models a project as a Package with a flat dependency map
// (main, group, and legacy dev dependencies merged), distinguishes local
// path dependencies from published version constraints, and provides JSON
// Schema validation of the [tool.poetry] structure.
package manifest
