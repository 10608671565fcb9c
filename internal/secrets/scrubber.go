// Package secrets detects and redacts credentials in text.
//
// The pipeline posts work-package documents (qa.md, cost.md) as tracker
// comments, and those documents can capture tool output containing
// tokens or connection strings. Every outbound comment passes through a
// Scrubber first so a leaked credential never reaches a public ticket.
package secrets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RedactionString replaces every detected secret.
const RedactionString = "[REDACTED]"

// Rule defines one secret detection pattern.
type Rule struct {
	// ID is the unique identifier for this rule.
	ID string
	// Description explains what this rule detects.
	Description string
	// Pattern is the regex matching the secret.
	Pattern string
}

// Finding records one detected secret. The matched text is deliberately
// not retained.
type Finding struct {
	RuleID string
	Start  int
	End    int
}

// Result is the outcome of scrubbing one piece of content.
type Result struct {
	// Scrubbed is the content with every finding redacted.
	Scrubbed string
	// Findings lists what was detected, oldest position first.
	Findings []Finding
}

// Summary returns a short human-readable account of the findings.
func (r *Result) Summary() string {
	if len(r.Findings) == 0 {
		return "no secrets detected"
	}
	counts := make(map[string]int)
	for _, f := range r.Findings {
		counts[f.RuleID]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("%d secret(s) redacted: %s", len(r.Findings), strings.Join(ids, ", "))
}

// Scrubber redacts secrets from content using compiled rules.
type Scrubber struct {
	rules []compiledRule
}

type compiledRule struct {
	id      string
	pattern *regexp.Regexp
}

// New compiles the given rules into a Scrubber. With no rules given the
// default rule set applies.
func New(rules ...Rule) (*Scrubber, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule with pattern %q: ID is required", r.Pattern)
		}
		p, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid pattern: %w", r.ID, err)
		}
		compiled = append(compiled, compiledRule{id: r.ID, pattern: p})
	}
	return &Scrubber{rules: compiled}, nil
}

// MustNew compiles the rules, panicking on error. The default rules are
// static, so a failure is a build defect.
func MustNew(rules ...Rule) *Scrubber {
	s, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Scrub redacts every secret in content.
//
// Matches are collected across all rules, merged where they overlap, and
// replaced back-to-front so earlier replacements never shift later
// positions.
func (s *Scrubber) Scrub(content string) *Result {
	var findings []Finding
	for _, rule := range s.rules {
		for _, loc := range rule.pattern.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{RuleID: rule.id, Start: loc[0], End: loc[1]})
		}
	}
	if len(findings) == 0 {
		return &Result{Scrubbed: content}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Start != findings[j].Start {
			return findings[i].Start < findings[j].Start
		}
		return findings[i].End > findings[j].End
	})

	// Merge overlapping findings, keeping the first rule that matched.
	merged := findings[:1]
	for _, f := range findings[1:] {
		last := &merged[len(merged)-1]
		if f.Start < last.End {
			if f.End > last.End {
				last.End = f.End
			}
			continue
		}
		merged = append(merged, f)
	}

	scrubbed := content
	for i := len(merged) - 1; i >= 0; i-- {
		scrubbed = scrubbed[:merged[i].Start] + RedactionString + scrubbed[merged[i].End:]
	}

	return &Result{Scrubbed: scrubbed, Findings: merged}
}
