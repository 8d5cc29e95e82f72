package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file searched for by the CLI.
const ManifestFileName = "lox.yml"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	REPL        REPLSettings
	Diagnostics DiagnosticSettings
}

// TargetSpec describes a runnable script. Main is a path relative to the
// manifest, or a path inside the repository when Git is set.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
	Git          string
	Rev          string
	Tag          string
	Branch       string
}

// IsGit reports whether the target's script lives in a git repository.
func (t *TargetSpec) IsGit() bool {
	return t != nil && t.Git != ""
}

// GitSpec returns the fetch descriptor for a git target.
func (t *TargetSpec) GitSpec() GitSpec {
	return GitSpec{URL: t.Git, Path: t.Main, Rev: t.Rev, Tag: t.Tag, Branch: t.Branch}
}

// REPLSettings configures the interactive prompt.
type REPLSettings struct {
	Prompt       string
	Continuation string
	History      string
}

// DiagnosticSettings configures diagnostic rendering.
type DiagnosticSettings struct {
	Color ColorMode
}

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never (empty means auto).
func ParseColorMode(raw string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported color mode %q (want auto, always or never)", raw)
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest, issues := raw.toManifest(absPath)
	if err := manifest.validate(issues); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate(issues []string) error {
	errs := ValidationError{Issues: issues}
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for _, key := range m.TargetOrder {
		target := m.Targets[key]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main script", target.OriginalName))
		}
		pins := 0
		for _, pin := range []string{target.Rev, target.Tag, target.Branch} {
			if pin != "" {
				pins++
			}
		}
		if target.Git == "" && pins > 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q sets rev, tag or branch without git", target.OriginalName))
		}
		if pins > 1 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q must set at most one of rev, tag or branch", target.OriginalName))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

var ErrNoTargets = errors.New("manifest: no targets defined")

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[sanitizeSegment(name)]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(m.Targets[key].OriginalName, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

// ResolveMain returns the on-disk path of a non-git target's script.
func (m *Manifest) ResolveMain(target *TargetSpec) (string, error) {
	if m == nil || target == nil {
		return "", fmt.Errorf("missing manifest or target")
	}
	if target.IsGit() {
		return "", fmt.Errorf("target %q is fetched from git", target.OriginalName)
	}
	mainPath := filepath.FromSlash(strings.TrimSpace(target.Main))
	if filepath.IsAbs(mainPath) {
		return filepath.Clean(mainPath), nil
	}
	return filepath.Join(filepath.Dir(m.Path), mainPath), nil
}

type manifestFile struct {
	Name        string          `yaml:"name"`
	Version     string          `yaml:"version"`
	Targets     targetMap       `yaml:"targets"`
	REPL        replYAML        `yaml:"repl"`
	Diagnostics diagnosticsYAML `yaml:"diagnostics"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

type replYAML struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	History      string `yaml:"history"`
}

type diagnosticsYAML struct {
	Color string `yaml:"color"`
}

// targetMap keeps targets in document order so DefaultTarget is stable.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		valueNode := value.Content[i+1]
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag == "!!str" {
			entry.Main = valueNode.Value
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) (*Manifest, []string) {
	var issues []string
	result := &Manifest{
		Path:        path,
		Name:        sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:     strings.TrimSpace(mf.Version),
		Targets:     make(map[string]*TargetSpec, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
		REPL: REPLSettings{
			Prompt:       mf.REPL.Prompt,
			Continuation: mf.REPL.Continuation,
			History:      strings.TrimSpace(mf.REPL.History),
		},
	}
	color, err := ParseColorMode(mf.Diagnostics.Color)
	if err != nil {
		issues = append(issues, "diagnostics.color: "+err.Error())
	}
	result.Diagnostics.Color = color

	for _, item := range mf.Targets.items {
		key := sanitizeSegment(item.name)
		if _, exists := result.Targets[key]; exists {
			issues = append(issues, fmt.Sprintf("targets %q and %q collide after sanitization", result.Targets[key].OriginalName, item.name))
			continue
		}
		result.Targets[key] = &TargetSpec{
			Name:         key,
			OriginalName: item.name,
			Main:         strings.TrimSpace(item.spec.Main),
			Git:          strings.TrimSpace(item.spec.Git),
			Rev:          strings.TrimSpace(item.spec.Rev),
			Tag:          strings.TrimSpace(item.spec.Tag),
			Branch:       strings.TrimSpace(item.spec.Branch),
		}
		result.TargetOrder = append(result.TargetOrder, key)
	}
	return result, issues
}

// sanitizeSegment lowercases name and maps anything outside [a-z0-9_] to '_'.
func sanitizeSegment(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
