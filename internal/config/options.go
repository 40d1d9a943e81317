package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"calrender/pkg/calendar"
)

// OrderedOptions holds calendar options in document order. Nested mappings
// become *calendar.Options as well, so the literal follows the file.
type OrderedOptions struct {
	*calendar.Options
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *OrderedOptions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		o.Options = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: options must be a mapping", node.Line)
	}
	opts, err := mappingOptions(node)
	if err != nil {
		return err
	}
	o.Options = opts
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o OrderedOptions) MarshalYAML() (interface{}, error) {
	if o.Options == nil {
		return nil, nil
	}
	return optionsNode(o.Options)
}

// IsZero lets omitempty skip documents without options.
func (o OrderedOptions) IsZero() bool {
	return o.Options == nil || o.Options.Len() == 0
}

func mappingOptions(node *yaml.Node) (*calendar.Options, error) {
	opts := calendar.NewOptions()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: option keys must be scalars", key.Line)
		}

		// Merge keys (<<: *anchor) contribute the keys not set explicitly.
		if key.ShortTag() == "!!merge" {
			if err := mergeInto(opts, value); err != nil {
				return nil, err
			}
			continue
		}

		v, err := nodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}
		opts.Set(key.Value, v)
	}
	return opts, nil
}

func mergeInto(opts *calendar.Options, node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		merged, err := mappingOptions(node)
		if err != nil {
			return err
		}
		for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
			if _, present := opts.Get(pair.Key); !present {
				opts.Set(pair.Key, pair.Value)
			}
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := mergeInto(opts, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", node.Line)
	}
}

func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		return mappingOptions(node)
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for i, item := range node.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, v)
		}
		return list, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func optionsNode(opts *calendar.Options) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := opts.Oldest(); pair != nil; pair = pair.Next() {
		var value *yaml.Node
		if nested, ok := pair.Value.(*calendar.Options); ok {
			n, err := optionsNode(nested)
			if err != nil {
				return nil, err
			}
			value = n
		} else {
			value = &yaml.Node{}
			if err := value.Encode(pair.Value); err != nil {
				return nil, fmt.Errorf("%s: %w", pair.Key, err)
			}
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			value,
		)
	}
	return node, nil
}
