package arazzo

import (
	"github.com/flowlint/flowlint/sequencedmap"
	"gopkg.in/yaml.v3"
)

// ActionType represents the type of a success or failure action.
type ActionType string

const (
	// ActionTypeGoto indicates the flow continues at another step.
	ActionTypeGoto ActionType = "goto"
	// ActionTypeEnd indicates the workflow ends.
	ActionTypeEnd ActionType = "end"
)

// SuccessAction describes what happens after a step succeeds.
type SuccessAction struct {
	// Name is the name of the action.
	Name string
	// Type is the type of the action.
	Type ActionType
	// Config holds the remaining action fields (goto target, nested criteria, retry
	// configuration) in document order.
	Config *sequencedmap.Map[string, *yaml.Node]
}

// UnmarshalYAML decodes the action, collecting unknown fields into Config in document order.
func (a *SuccessAction) UnmarshalYAML(node *yaml.Node) error {
	name, typ, config, err := decodeAction(node)
	if err != nil {
		return err
	}

	a.Name = name
	a.Type = typ
	a.Config = config

	return nil
}

// GotoStepID returns the target step id for goto actions.
func (a *SuccessAction) GotoStepID() (string, bool) {
	return gotoStepID(a.Type, a.Config)
}

// MarshalYAML encodes the action with its config fields in document order.
func (a *SuccessAction) MarshalYAML() (any, error) {
	return marshalAction(a.Name, a.Type, a.Config)
}

// FailureAction describes what happens after a step fails.
type FailureAction struct {
	// Name is the name of the action.
	Name string
	// Type is the type of the action.
	Type ActionType
	// Config holds the remaining action fields in document order.
	Config *sequencedmap.Map[string, *yaml.Node]
}

// UnmarshalYAML decodes the action, collecting unknown fields into Config in document order.
func (a *FailureAction) UnmarshalYAML(node *yaml.Node) error {
	name, typ, config, err := decodeAction(node)
	if err != nil {
		return err
	}

	a.Name = name
	a.Type = typ
	a.Config = config

	return nil
}

// GotoStepID returns the target step id for goto actions.
func (a *FailureAction) GotoStepID() (string, bool) {
	return gotoStepID(a.Type, a.Config)
}

// MarshalYAML encodes the action with its config fields in document order.
func (a *FailureAction) MarshalYAML() (any, error) {
	return marshalAction(a.Name, a.Type, a.Config)
}

func decodeAction(node *yaml.Node) (string, ActionType, *sequencedmap.Map[string, *yaml.Node], error) {
	var name string
	var typ ActionType
	config := sequencedmap.New[string, *yaml.Node]()

	if node.Kind != yaml.MappingNode {
		return "", "", config, &yaml.TypeError{Errors: []string{"action must be a mapping"}}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "name":
			if err := value.Decode(&name); err != nil {
				return "", "", config, err
			}
		case "type":
			if err := value.Decode(&typ); err != nil {
				return "", "", config, err
			}
		default:
			config.Set(key, value)
		}
	}

	return name, typ, config, nil
}

func marshalAction(name string, typ ActionType, config *sequencedmap.Map[string, *yaml.Node]) (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	appendField := func(key, value string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	if name != "" {
		appendField("name", name)
	}
	if typ != "" {
		appendField("type", string(typ))
	}

	for key, value := range config.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}

	return node, nil
}

func gotoStepID(typ ActionType, config *sequencedmap.Map[string, *yaml.Node]) (string, bool) {
	if typ != ActionTypeGoto {
		return "", false
	}

	node, ok := config.Get("stepId")
	if !ok || node == nil {
		return "", false
	}

	var stepID string
	if err := node.Decode(&stepID); err != nil {
		return "", false
	}

	return stepID, stepID != ""
}
