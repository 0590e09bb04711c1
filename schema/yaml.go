package schema

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders s as YAML with the same members, in the same order, as
// the canonical JSON encoding.
func MarshalYAML(s Schema) ([]byte, error) {
	n, err := yamlNode(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(s Schema) (*yaml.Node, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal nil schema")
	}
	switch s.Kind() {
	case KindPrimitive:
		return yamlString(string(s.AsPrimitive().Name)), nil
	case KindArray:
		a := s.AsArray()
		elem, err := yamlNode(a.Element)
		if err != nil {
			return nil, err
		}
		return yamlMapping(
			yamlString("type"), yamlString("array"),
			yamlString("elementType"), elem,
			yamlString("containsNull"), yamlBool(a.ContainsNull),
		), nil
	case KindStruct:
		fields := &yaml.Node{Kind: yaml.SequenceNode}
		for _, f := range s.AsStruct().Fields {
			t, err := yamlNode(f.Type)
			if err != nil {
				return nil, err
			}
			var kv []*yaml.Node
			if f.Named() {
				kv = append(kv, yamlString("name"), yamlString(f.Name))
			}
			kv = append(kv,
				yamlString("type"), t,
				yamlString("nullable"), yamlBool(f.Nullable),
				yamlString("metadata"), yamlMetadata(f.Metadata),
			)
			fields.Content = append(fields.Content, yamlMapping(kv...))
		}
		return yamlMapping(yamlString("type"), yamlString("struct"), yamlString("fields"), fields), nil
	}
	return nil, fmt.Errorf("unknown schema kind %s", s.Kind())
}

func yamlMetadata(md map[string]string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if len(md) == 0 {
		n.Style = yaml.FlowStyle
		return n
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Content = append(n.Content, yamlString(k), yamlString(md[k]))
	}
	return n
}

func yamlMapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlBool(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
