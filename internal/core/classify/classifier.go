// Package classify decides which paperwork category a normalized OCR
// transcript belongs to. Classification is a pure function of the text:
// strong-signal short-circuit, then a weighted keyword score per category
// gated by anchor hits and a score margin, then domain tie-break overrides.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

type compiledPattern struct {
	re     *regexp.Regexp
	weight int
	anchor bool
}

type compiledRule struct {
	category  domain.Category
	patterns  []compiledPattern
	negatives []compiledPattern
}

type Classifier struct {
	set   RuleSet
	rules []compiledRule
}

// New compiles a rule set. Pattern expressions are Go regexps; plain phrases
// work as-is.
func New(set RuleSet) (*Classifier, error) {
	if set.Margin < 0 {
		return nil, fmt.Errorf("classify: margin must be non-negative, got %d", set.Margin)
	}
	rules := make([]compiledRule, 0, len(set.Rules))
	for _, rule := range set.Rules {
		compiled := compiledRule{category: rule.Category}
		for _, p := range rule.Patterns {
			cp, err := compilePattern(p)
			if err != nil {
				return nil, err
			}
			compiled.patterns = append(compiled.patterns, cp)
		}
		for _, p := range rule.Negatives {
			cp, err := compilePattern(p)
			if err != nil {
				return nil, err
			}
			compiled.negatives = append(compiled.negatives, cp)
		}
		rules = append(rules, compiled)
	}
	return &Classifier{set: set, rules: rules}, nil
}

// NewDefault builds a classifier from the built-in rule set.
func NewDefault() *Classifier {
	c, err := New(DefaultRuleSet())
	if err != nil {
		panic(fmt.Sprintf("classify: default rule set does not compile: %v", err))
	}
	return c
}

func compilePattern(p Pattern) (compiledPattern, error) {
	re, err := regexp.Compile(p.Expr)
	if err != nil {
		return compiledPattern{}, fmt.Errorf("classify: compile pattern %q: %w", p.Expr, err)
	}
	return compiledPattern{re: re, weight: p.Weight, anchor: p.Anchor}, nil
}

type score struct {
	category   domain.Category
	total      int
	anchorHits int
}

// Classify returns exactly one category for the text, CategoryUnclassified
// when no confident winner exists. Identical input always yields an
// identical result.
func (c *Classifier) Classify(text string) domain.Category {
	if strings.TrimSpace(text) == "" {
		return domain.CategoryUnclassified
	}

	for _, signal := range c.set.StrongSignals {
		if containsAll(text, signal.AllOf) {
			return signal.Category
		}
	}

	scores := make([]score, 0, len(c.rules))
	for _, rule := range c.rules {
		scores = append(scores, rule.score(text))
	}

	best, second := top2(scores)
	if best == nil {
		return domain.CategoryUnclassified
	}
	lead := best.total
	if second != nil {
		lead = best.total - second.total
	}
	if best.anchorHits == 0 || best.total <= 0 || lead < c.set.Margin {
		return domain.CategoryUnclassified
	}

	winner := best.category
	for _, o := range c.set.Overrides {
		if winner != o.When {
			continue
		}
		if containsAny(text, o.AnyOf) && !containsAny(text, o.NoneOf) {
			winner = o.Prefer
		}
	}
	return winner
}

func (r compiledRule) score(text string) score {
	s := score{category: r.category}
	for _, p := range r.patterns {
		hits := len(p.re.FindAllStringIndex(text, -1))
		if hits == 0 {
			continue
		}
		s.total += p.weight * hits
		if p.anchor {
			s.anchorHits += hits
		}
	}
	for _, p := range r.negatives {
		s.total -= p.weight * len(p.re.FindAllStringIndex(text, -1))
	}
	return s
}

// top2 returns the highest and second-highest scores. Rule order breaks
// exact ties for first place, which only matters for the margin gate: an
// exact tie never survives it.
func top2(scores []score) (*score, *score) {
	var best, second *score
	for i := range scores {
		s := &scores[i]
		switch {
		case best == nil || s.total > best.total:
			second = best
			best = s
		case second == nil || s.total > second.total:
			second = s
		}
	}
	return best, second
}

func containsAll(text string, phrases []string) bool {
	if len(phrases) == 0 {
		return false
	}
	for _, p := range phrases {
		if !strings.Contains(text, p) {
			return false
		}
	}
	return true
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
