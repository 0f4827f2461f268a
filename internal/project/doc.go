// Package project discovers Poetry projects in a directory tree. It walks
// the tree for pyproject.toml files, skipping excluded and hidden
// directories, and loads each manifest into a name-keyed package index.
package project
