package haiku

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the YAML change summary written after a conversion.
type Report struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Direction   string          `yaml:"direction"`
	Projects    []ProjectReport `yaml:"projects"`
}

// ProjectReport summarizes the changes applied to one project.
type ProjectReport struct {
	Name    string         `yaml:"name"`
	Version string         `yaml:"version"`
	Path    string         `yaml:"path"`
	Changes []ChangeReport `yaml:"changes,omitempty"`
}

// ChangeReport records one rewritten dependency line.
type ChangeReport struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// BuildReport converts conversion results into a Report.
func BuildReport(direction Direction, results []ProjectChanges) *Report {
	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Direction:   string(direction),
	}
	for _, r := range results {
		pr := ProjectReport{
			Name:    r.Package.Name,
			Version: r.Package.Version,
			Path:    r.Package.Path,
		}
		for _, c := range r.Changes {
			pr.Changes = append(pr.Changes, ChangeReport{
				From: strings.TrimSpace(c.Old),
				To:   strings.TrimSpace(c.New),
			})
		}
		report.Projects = append(report.Projects, pr)
	}
	return report
}

// WriteReport marshals a Report to YAML at path.
func WriteReport(path string, direction Direction, results []ProjectChanges) error {
	data, err := yaml.Marshal(BuildReport(direction, results))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
