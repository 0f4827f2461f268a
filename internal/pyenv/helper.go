package pyenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// noDepsMarker is poetry's output when an update has nothing to do.
const noDepsMarker = "No dependencies to install or update"

// defaultPythonVersion is used when creating a conda environment.
const defaultPythonVersion = "3.11"

// Helper runs poetry inside a project's detected environment.
type Helper struct {
	Package       *manifest.Package
	VenvPath      string
	CondaBasePath string

	// Out receives streamed subprocess output. Defaults to os.Stdout.
	Out io.Writer
}

// NewHelper returns a Helper for pkg with the conda base defaulting to
// ~/miniforge3.
func NewHelper(pkg *manifest.Package) *Helper {
	return &Helper{
		Package:       pkg,
		CondaBasePath: DefaultCondaBase(),
	}
}

// FromPath loads the manifest at path and returns a Helper for it.
func FromPath(path string) (*Helper, error) {
	pkg, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return NewHelper(pkg), nil
}

// DefaultCondaBase returns the default conda installation path.
func DefaultCondaBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "miniforge3")
}

// Update runs `poetry update` in the detected environment. The returned
// bool is false when poetry reported nothing to do.
func (h *Helper) Update(ctx context.Context) (string, bool, error) {
	return h.runPoetry(ctx, "update")
}

// Install runs `poetry install` in the detected environment.
func (h *Helper) Install(ctx context.Context) (string, bool, error) {
	return h.runPoetry(ctx, "install")
}

func (h *Helper) runPoetry(ctx context.Context, verb string) (string, bool, error) {
	detector := &Detector{
		Package:       h.Package,
		VenvPath:      h.VenvPath,
		CondaBasePath: h.CondaBasePath,
	}
	env, err := detector.Detect()
	if err != nil {
		return "", false, err
	}

	command := poetryCommand(env.ActivateCommand, verb)
	result, err := RunBash(ctx, command, h.Package.Dir(), h.out())
	if err != nil {
		return "", false, fmt.Errorf("poetry %s failed for %s: %w", verb, h.Package.Name, err)
	}

	if strings.Contains(result.Stdout, noDepsMarker) {
		log.Info().Str("package", h.Package.Name).Msg("no dependencies to install or update")
		return result.Stdout, false, nil
	}

	log.Info().
		Str("package", h.Package.Name).
		Str("version", h.Package.Version).
		Str("env", string(env.Type)).
		Msgf("poetry %s successful", verb)
	return result.Stdout, true, nil
}

// EnsureEnv detects the project's environment, creating a conda environment
// named after the package when none exists.
func (h *Helper) EnsureEnv(ctx context.Context) error {
	detector := &Detector{
		Package:       h.Package,
		VenvPath:      h.VenvPath,
		CondaBasePath: h.CondaBasePath,
	}
	_, err := detector.Detect()
	if err == nil {
		return nil
	}
	var detectErr *DetectionError
	if !errors.As(err, &detectErr) {
		return err
	}
	return h.CreateCondaEnv(ctx)
}

// CreateCondaEnv creates a conda environment named after the package.
func (h *Helper) CreateCondaEnv(ctx context.Context) error {
	command := fmt.Sprintf("conda create -n %s python=%s -y", h.Package.Name, defaultPythonVersion)
	log.Info().Str("package", h.Package.Name).Msg("creating conda environment")
	if _, err := RunBash(ctx, command, h.Package.Dir(), h.out()); err != nil {
		return fmt.Errorf("creating conda environment for %s: %w", h.Package.Name, err)
	}
	return nil
}

// poetryCommand joins an activation command with a poetry invocation.
func poetryCommand(activate, verb string) string {
	return fmt.Sprintf("%s && poetry %s -vvv", activate, verb)
}

func (h *Helper) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stdout
}
