package main

import (
	"context"
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/driver"
)

// usageError marks invocation mistakes that exit with the usage status.
type usageError struct {
	message string
}

func (e *usageError) Error() string { return e.message }

func usagef(format string, args ...any) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}

// resolveSource picks the input for a source command: -e text, an explicit
// -t target, a file or target argument, or the manifest's default target.
func resolveSource(ctx context.Context, command commandKind, opts cliOptions, manifest *driver.Manifest) (driver.Source, error) {
	label := command.label()
	if opts.evalSet {
		if len(opts.args) > 0 || opts.target != "" {
			return driver.Source{}, usagef("%s: -e cannot be combined with a file or target", label)
		}
		return driver.Source{Name: "<eval>", Text: opts.eval, StartLine: 1}, nil
	}
	if len(opts.args) > 1 {
		return driver.Source{}, usagef("%s accepts at most one file or target", label)
	}
	if opts.target != "" {
		if len(opts.args) > 0 {
			return driver.Source{}, usagef("%s: -t cannot be combined with a file argument", label)
		}
		return targetSource(ctx, manifest, opts.target)
	}
	if len(opts.args) == 1 {
		candidate := opts.args[0]
		if manifest != nil && !looksLikePathCandidate(candidate) {
			if _, ok := manifest.FindTarget(candidate); ok {
				return targetSource(ctx, manifest, candidate)
			}
		}
		return driver.LoadFile(candidate)
	}
	if manifest == nil {
		return driver.Source{}, usagef("%s requires a file, -e source, or a %s target", label, driver.ManifestFileName)
	}
	target, err := manifest.DefaultTarget()
	if err != nil {
		if errors.Is(err, driver.ErrNoTargets) {
			return driver.Source{}, usagef("%s: %s at %s defines no targets", label, driver.ManifestFileName, manifest.Path)
		}
		return driver.Source{}, err
	}
	return sourceForTarget(ctx, manifest, target)
}

func targetSource(ctx context.Context, manifest *driver.Manifest, name string) (driver.Source, error) {
	if manifest == nil {
		return driver.Source{}, usagef("target %q requested but no %s was found", name, driver.ManifestFileName)
	}
	target, ok := manifest.FindTarget(name)
	if !ok {
		return driver.Source{}, usagef("target %q not found in %s", name, manifest.Path)
	}
	return sourceForTarget(ctx, manifest, target)
}

func sourceForTarget(ctx context.Context, manifest *driver.Manifest, target *driver.TargetSpec) (driver.Source, error) {
	if target.IsGit() {
		return driver.FetchGitSource(ctx, target.GitSpec())
	}
	mainPath, err := manifest.ResolveMain(target)
	if err != nil {
		return driver.Source{}, err
	}
	return driver.LoadFile(mainPath)
}
