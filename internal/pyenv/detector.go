package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// EnvType identifies the kind of Python environment backing a project.
type EnvType string

const (
	Venv  EnvType = "venv"
	Conda EnvType = "conda"
)

// Result describes a detected environment and the shell command that
// activates it.
type Result struct {
	Type            EnvType
	ActivateCommand string
}

// DetectionError reports that no usable environment was found for a package.
type DetectionError struct {
	Package  string
	Searched []string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("no environment found for %s (searched: %s)",
		e.Package, strings.Join(e.Searched, ", "))
}

// Detector locates the environment for one project. VenvPath pins an
// explicit virtualenv; CondaBasePath points at a conda installation whose
// envs/ directory is searched for an environment named after the package.
type Detector struct {
	Package       *manifest.Package
	VenvPath      string
	CondaBasePath string
}

// Detect searches venv candidates first, then conda. Search order for
// venvs: the explicit path, then .venv and venv in the project directory
// and its parent.
func (d *Detector) Detect() (*Result, error) {
	var searched []string

	for _, candidate := range d.venvCandidates() {
		searched = append(searched, candidate)
		if script, ok := d.activateScript(candidate); ok {
			log.Info().Msgf("Found venv at %s", candidate)
			return &Result{
				Type:            Venv,
				ActivateCommand: "source " + script,
			}, nil
		}
	}

	if d.CondaBasePath != "" {
		envDir := filepath.Join(d.CondaBasePath, "envs", d.Package.Name)
		searched = append(searched, envDir)
		if d.isValidEnvironment(envDir) {
			log.Info().Msgf("Found conda environment %s", d.Package.Name)
			activate := fmt.Sprintf("source %s && conda activate %s",
				filepath.Join(d.CondaBasePath, "bin", "activate"), d.Package.Name)
			return &Result{Type: Conda, ActivateCommand: activate}, nil
		}
	}

	return nil, &DetectionError{Package: d.Package.Name, Searched: searched}
}

// venvCandidates returns the directories checked for a virtualenv.
func (d *Detector) venvCandidates() []string {
	if d.VenvPath != "" {
		return []string{d.VenvPath}
	}
	projDir := d.Package.Dir()
	parent := filepath.Dir(projDir)
	return []string{
		filepath.Join(projDir, ".venv"),
		filepath.Join(projDir, "venv"),
		filepath.Join(parent, ".venv"),
		filepath.Join(parent, "venv"),
	}
}

// activateScript returns the activation script inside a venv directory.
// Both POSIX (bin/activate) and Windows (Scripts/activate) layouts are
// checked, the native one first.
func (d *Detector) activateScript(venvDir string) (string, bool) {
	layouts := []string{"bin", "Scripts"}
	if runtime.GOOS == "windows" {
		layouts = []string{"Scripts", "bin"}
	}
	for _, sub := range layouts {
		script := filepath.Join(venvDir, sub, "activate")
		if _, err := os.Stat(script); err == nil {
			return script, true
		}
	}
	return "", false
}

// isValidEnvironment reports whether dir holds a usable environment.
func (d *Detector) isValidEnvironment(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, ok := d.activateScript(dir)
	return ok
}
