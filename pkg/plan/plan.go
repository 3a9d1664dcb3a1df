// Package plan describes a batch of statements processed in one run.
package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const monthLayout = "2006-01"

type Plan struct {
	Statements []Statement `yaml:"statements"`
}

type Statement struct {
	File  string `yaml:"file"`
	Month string `yaml:"month"`

	month time.Time
}

// Load reads a plan file. Relative statement paths are resolved against the
// plan's directory.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Statements) == 0 {
		return nil, fmt.Errorf("plan has no statements")
	}

	base := filepath.Dir(path)
	for i := range p.Statements {
		st := &p.Statements[i]
		if st.File == "" {
			return nil, fmt.Errorf("statement %d has no file", i+1)
		}
		file, err := expand(st.File, base)
		if err != nil {
			return nil, err
		}
		st.File = file

		if st.Month != "" {
			m, err := time.Parse(monthLayout, st.Month)
			if err != nil {
				return nil, fmt.Errorf("statement %s: invalid month %q (want YYYY-MM)", st.File, st.Month)
			}
			st.month = m
		}
	}
	return &p, nil
}

func expand(file, base string) (string, error) {
	if strings.HasPrefix(file, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, file[2:]), nil
	}
	if !filepath.IsAbs(file) {
		return filepath.Join(base, file), nil
	}
	return file, nil
}

// Ordered returns statements newest month first, which is the order the
// installment tracker expects. Statements without a month follow, in file
// order.
func (p *Plan) Ordered() []Statement {
	out := make([]Statement, len(p.Statements))
	copy(out, p.Statements)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].month, out[j].month
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
	return out
}

// Files returns the statement paths in processing order.
func (p *Plan) Files() []string {
	ordered := p.Ordered()
	files := make([]string, 0, len(ordered))
	for _, st := range ordered {
		files = append(files, st.File)
	}
	return files
}

func (p *Plan) Print(w io.Writer) {
	for i, st := range p.Ordered() {
		month := st.Month
		if month == "" {
			month = "-"
		}
		fmt.Fprintf(w, "[%d] month=%s file=%s\n", i+1, month, st.File)
	}
}
