package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"regress/internal/domain"
)

// CaseFileParser parses YAML case files
type CaseFileParser struct{}

// NewCaseFileParser creates a new CaseFileParser
func NewCaseFileParser() *CaseFileParser {
	return &CaseFileParser{}
}

// Parse reads and validates the case file at path
func (p *CaseFileParser) Parse(path string) (*domain.CaseFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	cf, err := p.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

// Decode parses a case file from memory. Unknown keys are rejected so typos
// in expectations do not silently pass.
func (p *CaseFileParser) Decode(content []byte) (*domain.CaseFile, error) {
	var cf domain.CaseFile
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse case file: %w", err)
	}
	if err := validate(&cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

func validate(cf *domain.CaseFile) error {
	if cf.Suite == nil {
		return nil
	}
	seen := make(map[string]bool)
	for i, c := range *cf.Suite {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("case %d: name is required", i+1)
		}
		if seen[name] {
			return fmt.Errorf("case %q: duplicate name", name)
		}
		seen[name] = true
		if c.Stdout != nil && c.StdoutFile != "" {
			return fmt.Errorf("case %q: stdout and stdout_file are mutually exclusive", name)
		}
		if c.Timeout < 0 {
			return fmt.Errorf("case %q: negative timeout", name)
		}
	}
	return nil
}
