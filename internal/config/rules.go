package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/ymatsuda/docfiler/internal/core/classify"
)

//go:embed rules_schema.json
var rulesSchema []byte

// LoadRules returns the built-in classification tables, or the override
// from path when one is configured. Overrides are validated against a
// schema before use so a typo in a weight or category name fails at
// startup instead of misfiling documents.
func LoadRules(path string) (classify.RuleSet, error) {
	if path == "" {
		return classify.DefaultRuleSet(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return classify.RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := validateRules(raw); err != nil {
		return classify.RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}

	var rules classify.RuleSet
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return classify.RuleSet{}, fmt.Errorf("parse rules file: %w", err)
	}
	return rules, nil
}

func validateRules(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules_schema.json", bytes.NewReader(rulesSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules_schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(asJSON, &v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rules do not match schema: %w", err)
	}
	return nil
}
