package cstar

import (
	"fmt"
	"regexp"
)

// Rule is a pure text transformation applied to a retained line.
type Rule struct {
	Name  string
	Apply func(string) string
}

// RegexpRule replaces every match of re with repl. repl may reference
// submatches with $1 style expansion.
func RegexpRule(name string, re *regexp.Regexp, repl string) Rule {
	return Rule{
		Name: name,
		Apply: func(line string) string {
			return re.ReplaceAllString(line, repl)
		},
	}
}

// CompileRule builds a RegexpRule from a pattern string.
func CompileRule(name, pattern, repl string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rewrite rule %q: %w", name, err)
	}
	return RegexpRule(name, re, repl), nil
}

var (
	printlnPattern     = regexp.MustCompile(`System\.out\.println`)
	stringArrayPattern = regexp.MustCompile(`string\s+args\s*\[\d+\]\s*=\s*\{`)
)

// DefaultRules returns the built-in rules in application order.
func DefaultRules() []Rule {
	return []Rule{
		RegexpRule("scoped-println", printlnPattern, "System::out.println"),
		RegexpRule("string-args-array", stringArrayPattern, "std::string args[] = {"),
	}
}

// Rewriter applies an ordered rule list.
type Rewriter struct {
	rules []Rule
}

// NewRewriter returns a Rewriter over rules, applied in the given order.
func NewRewriter(rules ...Rule) *Rewriter {
	return &Rewriter{rules: append([]Rule(nil), rules...)}
}

// Rewrite runs every rule over line, each seeing the previous rule's output.
func (r *Rewriter) Rewrite(line string) string {
	for _, rule := range r.rules {
		line = rule.Apply(line)
	}
	return line
}

// RuleNames lists the rule names in application order.
func (r *Rewriter) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}
