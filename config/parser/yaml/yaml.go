package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrEmptyData is returned when the input holds no YAML node, only whitespace or comments.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Option configures a Parser.
type Option func(*Parser)

// WithStrict rejects documents that carry keys unknown to the target structure.
func WithStrict() Option {
	return func(p *Parser) {
		p.decodeOptions = append(p.decodeOptions, yaml.Strict())
	}
}

// Parser implements config.Parser for YAML settings documents.
type Parser struct {
	decodeOptions []yaml.DecodeOption
}

// NewParser creates a new YAML parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse decodes data into target. A non-empty path selects a nested node first,
// with colon-separated segments ("api:base_url").
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	if !hasContent(file) {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.decodeOptions...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := pathObj.FilterFile(file)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(node, target, p.decodeOptions...)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}

// hasContent reports whether any document in file carries a node other than comments.
func hasContent(file *ast.File) bool {
	for _, doc := range file.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}

		if _, ok := doc.Body.(*ast.CommentGroupNode); ok {
			continue
		}

		return true
	}

	return false
}

// convertToYAMLPath turns "api:base_url" into "$.api.base_url".
func convertToYAMLPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}
