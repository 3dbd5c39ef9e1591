package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes catalog YAML. The document maps a `common` section (headers,
// error-codes) plus one entry per command. Request fields are decoded by
// walking yaml.Node directly because the firmware requires them in document
// order and Go maps would lose it.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog root must be a mapping")
	}

	cat := &Catalog{
		headers:    map[string]string{},
		errorCodes: map[string]string{},
		commands:   map[string]Command{},
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		val := root.Content[i+1]
		if name == "common" {
			if err := parseCommon(cat, val); err != nil {
				return nil, err
			}
			continue
		}
		cmd, err := parseCommand(name, val)
		if err != nil {
			return nil, err
		}
		cat.commands[name] = cmd
		cat.names = append(cat.names, name)
	}
	if cat.Host() == "" {
		return nil, fmt.Errorf("common.headers.Host is required")
	}
	return cat, nil
}

func parseCommon(cat *Catalog, n *yaml.Node) error {
	var common struct {
		Headers    map[string]string `yaml:"headers"`
		ErrorCodes map[string]string `yaml:"error-codes"`
	}
	if err := n.Decode(&common); err != nil {
		return fmt.Errorf("common section: %w", err)
	}
	cat.headers = common.Headers
	if cat.headers == nil {
		cat.headers = map[string]string{}
	}
	if common.ErrorCodes != nil {
		cat.errorCodes = common.ErrorCodes
	}
	return nil
}

func parseCommand(name string, n *yaml.Node) (Command, error) {
	if n.Kind != yaml.MappingNode {
		return Command{}, fmt.Errorf("command %q must be a mapping", name)
	}
	cmd := Command{Name: name}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case "url":
			cmd.URL = val.Value
		case "method":
			cmd.Method = strings.ToUpper(val.Value)
		case "Referer":
			cmd.Referer = val.Value
		case "request":
			fields, err := fieldsFromYAML(val)
			if err != nil {
				return Command{}, fmt.Errorf("command %q: %w", name, err)
			}
			cmd.Request = fields
		}
	}
	if cmd.URL == "" {
		return Command{}, fmt.Errorf("command %q has no url", name)
	}
	if cmd.Method == "" {
		return Command{}, fmt.Errorf("command %q has no method", name)
	}
	return cmd, nil
}

// fieldsFromYAML converts a YAML mapping into an ordered field node. Nested
// mappings become nested nodes; sequences become repeated-sibling lists.
func fieldsFromYAML(n *yaml.Node) (*xmlcodec.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("request fields must be a mapping")
	}
	node := xmlcodec.NewNode()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := valueFromYAML(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		node.Set(key, v)
	}
	return node, nil
}

func valueFromYAML(n *yaml.Node) (xmlcodec.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return xmlcodec.Scalar(""), nil
		}
		return xmlcodec.Scalar(n.Value), nil
	case yaml.MappingNode:
		return fieldsFromYAML(n)
	case yaml.SequenceNode:
		list := make(xmlcodec.List, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := valueFromYAML(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
