/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
	"strings"
	"unicode"
)

// Prompt is a template with bindable {{token}} placeholders.
type Prompt struct {
	template string
	bound    map[string]string
	tokens   map[string]struct{}
}

// NewPrompt parses a template and records its placeholders.
func NewPrompt(template string) (*Prompt, error) {
	tokens := make(map[string]struct{})
	if err := walk(template, func(name string) error {
		tokens[name] = struct{}{}
		return nil
	}); err != nil {
		return nil, err
	}
	return &Prompt{
		template: template,
		bound:    map[string]string{},
		tokens:   tokens,
	}, nil
}

// MustNewPrompt is NewPrompt for package-level template variables; it
// panics on a malformed template.
func MustNewPrompt(template string) *Prompt {
	p, err := NewPrompt(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Tokens returns the set of placeholder names found in the template.
func (p *Prompt) Tokens() map[string]struct{} {
	return maps.Clone(p.tokens)
}

// Bind binds a value to a placeholder, returning a new Prompt. Binding an
// unknown or already-bound placeholder is an error.
func (p *Prompt) Bind(name, value string) (*Prompt, error) {
	if _, ok := p.tokens[name]; !ok {
		return nil, fmt.Errorf("no placeholder %q in template", name)
	}
	if _, ok := p.bound[name]; ok {
		return nil, fmt.Errorf("placeholder %q is already bound", name)
	}
	next := &Prompt{
		template: p.template,
		bound:    maps.Clone(p.bound),
		tokens:   p.tokens,
	}
	next.bound[name] = value
	return next, nil
}

// Build renders the prompt, failing if any placeholder remains unbound.
func (p *Prompt) Build() (string, error) {
	var sb strings.Builder
	rest := p.template
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		sb.WriteString(rest[:start])

		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return "", fmt.Errorf("unclosed placeholder near %q", rest[start:])
		}
		name := strings.TrimSpace(rest[start+2 : start+end])
		value, ok := p.bound[name]
		if !ok {
			return "", fmt.Errorf("placeholder %q is unbound", name)
		}
		sb.WriteString(value)
		rest = rest[start+end+2:]
	}
}

// walk scans the template and invokes visit for each placeholder name.
func walk(template string, visit func(name string) error) error {
	rest := template
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return nil
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return fmt.Errorf("unclosed placeholder near %q", rest[start:])
		}
		name := strings.TrimSpace(rest[start+2 : start+end])
		if !validName(name) {
			return fmt.Errorf("invalid placeholder name %q", name)
		}
		if err := visit(name); err != nil {
			return err
		}
		rest = rest[start+end+2:]
	}
}

// validName reports whether s is a letter followed by letters, digits, or underscores.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_':
			return false
		}
	}
	return s != ""
}
