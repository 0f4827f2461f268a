// Package rewrite converts dependency declarations in pyproject.toml files
// between local path form ({develop = true, path = "../pkg"}) and published
// version form ("^1.2.3"). Rewriting is line-based: only matched
// "name = value" lines change, every other byte of the file is preserved.
package rewrite
