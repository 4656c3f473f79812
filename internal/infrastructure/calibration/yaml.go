package calibration

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OpenCV пишет директиву в виде "%YAML:1.0", которую парсер YAML 1.2 не принимает
var opencvDirective = []byte("%YAML")

func decodeYAML(data []byte) (map[string]rawNode, error) {
	data = stripDirective(data)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top level is not a mapping")
	}

	nodes := make(map[string]rawNode, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		n, err := yamlNode(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		nodes[name] = n
	}
	return nodes, nil
}

func stripDirective(data []byte) []byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, opencvDirective) {
		return data
	}
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		return trimmed[i+1:]
	}
	return nil
}

func yamlNode(name string, n *yaml.Node) (rawNode, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return rawNode{values: []string{n.Value}}, nil
	case yaml.SequenceNode:
		return rawNode{values: scalars(n)}, nil
	case yaml.MappingNode:
		var (
			out       rawNode
			haveShape bool
		)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			switch key {
			case "rows", "cols":
				v, err := strconv.Atoi(val.Value)
				if err != nil {
					return rawNode{}, fmt.Errorf("%s: bad %s %q", name, key, val.Value)
				}
				if key == "rows" {
					out.rows = v
				} else {
					out.cols = v
				}
				haveShape = true
			case "data":
				out.values = scalars(val)
			}
		}
		if !haveShape {
			// не матрица OpenCV, а произвольная структура
			return rawNode{}, nil
		}
		return out, nil
	case yaml.AliasNode:
		if n.Alias != nil {
			return yamlNode(name, n.Alias)
		}
	}
	return rawNode{}, nil
}

func scalars(n *yaml.Node) []string {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		out = append(out, scalars(c)...)
	}
	return out
}
