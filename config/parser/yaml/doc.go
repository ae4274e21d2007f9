// Package yaml provides the YAML parser for settings documents.
//
// It is backed by github.com/goccy/go-yaml. Colon-separated paths such as
// "currencies:targets" are converted to YAML path syntax ("$.currencies.targets")
// and read directly, so a caller can decode a single section without
// unmarshaling the whole document.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var targets []string
//	err := parser.Parse(data, &targets, "currencies:targets")
package yaml
