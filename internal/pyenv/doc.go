// Package pyenv locates the Python environment backing a Poetry project
// (virtualenv or conda), synthesizes the shell command that activates it,
// and drives poetry install/update inside that environment.
package pyenv
