package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rawen554/qrcodegen/internal/content"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// recordFlags collect a record from --type, a --data file and repeated --field pairs.
type recordFlags struct {
	recordType string
	dataFile   string
	fields     []string
}

func (rf *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.recordType, "type", "t", "", "record type (see 'qrcli types')")
	cmd.Flags().StringVarP(&rf.dataFile, "data", "d", "", "YAML or JSON file with the record fields")
	cmd.Flags().StringArrayVarP(&rf.fields, "field", "f", nil, "record field as name=value, repeatable")
	_ = cmd.MarkFlagRequired("type")
}

// data merges the data file with --field pairs; pairs win.
func (rf *recordFlags) data() ([]byte, error) {
	fields := make(map[string]any)

	if rf.dataFile != "" {
		raw, err := os.ReadFile(rf.dataFile)
		if err != nil {
			return nil, fmt.Errorf("error reading data file: %w", err)
		}
		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("error decoding data file: %w", err)
		}
		for name, node := range doc {
			node := node
			value, err := nodeValue(&node)
			if err != nil {
				return nil, fmt.Errorf("error decoding field %q: %w", name, err)
			}
			fields[name] = value
		}
	}

	for _, pair := range rf.fields {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("field %q must look like name=value", pair)
		}
		fields[name] = value
	}

	return json.Marshal(fields)
}

// nodeValue keeps scalars as the text they were written with. Only values
// that are already valid JSON numbers stay numbers, so 0555123 is not read as octal.
func nodeValue(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}

	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			return json.RawMessage(node.Value), nil
		}
	}
	return node.Value, nil
}

func (rf *recordFlags) format() (string, error) {
	recordType, err := content.ParseType(rf.recordType)
	if err != nil {
		return "", err
	}

	data, err := rf.data()
	if err != nil {
		return "", err
	}

	return content.Format(recordType, data)
}
