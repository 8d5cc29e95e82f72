package main

import (
	"fmt"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"

	"lox/interpreter-go/pkg/driver"
)

type commandKind int

const (
	commandRun commandKind = iota
	commandCheck
	commandTokenize
	commandParse
)

func (k commandKind) label() string {
	switch k {
	case commandCheck:
		return "check"
	case commandTokenize:
		return "tokenize"
	case commandParse:
		return "parse"
	default:
		return "run"
	}
}

type cliOptions struct {
	color    driver.ColorMode
	colorSet bool
	eval     string
	evalSet  bool
	target   string
	args     []string
}

// parseOptions applies getopt-style flags. Flags must precede positional
// arguments.
func parseOptions(command string, args []string, spec string) (cliOptions, error) {
	var parsed cliOptions
	argv := append([]string{"lox " + command}, args...)
	opts, optind, err := getopt.Getopts(argv, spec)
	if err != nil {
		return parsed, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			mode, err := driver.ParseColorMode(opt.Value)
			if err != nil {
				return parsed, err
			}
			parsed.color = mode
			parsed.colorSet = true
		case 'e':
			parsed.eval = opt.Value
			parsed.evalSet = true
		case 't':
			parsed.target = strings.TrimSpace(opt.Value)
		default:
			return parsed, fmt.Errorf("unsupported option -%c", opt.Option)
		}
	}
	parsed.args = argv[optind:]
	return parsed, nil
}

// colorMode prefers the -c flag, then the manifest setting.
func (o cliOptions) colorMode(manifest *driver.Manifest) driver.ColorMode {
	if o.colorSet {
		return o.color
	}
	if manifest != nil && manifest.Diagnostics.Color != "" {
		return manifest.Diagnostics.Color
	}
	return driver.ColorAuto
}
