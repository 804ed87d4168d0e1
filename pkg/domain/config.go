package domain

import "slices"

// Config is the type-specific configuration of a node. Each NodeType has
// exactly one variant; a switch over the concrete types is exhaustive.
type Config interface {
	// Type returns the node type this variant configures.
	Type() NodeType
	// Validate checks the variant against its schema. Failures are
	// *ConfigError values wrapping ErrInvalidConfiguration.
	Validate() error
}

// DefaultTextTemplate is the template a fresh Text node starts with.
const DefaultTextTemplate = "{{input}}"

// DefaultMergeInputs is the number of inbound ports a fresh Merge node exposes.
const DefaultMergeInputs = 2

var (
	ioKinds        = []string{"Text", "File"}
	operators      = []string{"==", "!=", ">", "<", ">=", "<="}
	transformKinds = []string{"uppercase", "lowercase", "trim", "reverse", "custom"}
	filterKinds    = []string{"contains", "startsWith", "endsWith", "equals", "regex"}
	httpMethods    = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
)

// InputConfig configures a pipeline entry point.
type InputConfig struct {
	InputName string `json:"inputName" mapstructure:"inputName"`
	InputType string `json:"inputType" mapstructure:"inputType"`
}

func (InputConfig) Type() NodeType { return NodeTypeInput }

func (c InputConfig) Validate() error {
	return oneOf(NodeTypeInput, "inputType", c.InputType, ioKinds)
}

// OutputConfig configures a pipeline exit point.
type OutputConfig struct {
	OutputName string `json:"outputName" mapstructure:"outputName"`
	OutputType string `json:"outputType" mapstructure:"outputType"`
}

func (OutputConfig) Type() NodeType { return NodeTypeOutput }

func (c OutputConfig) Validate() error {
	return oneOf(NodeTypeOutput, "outputType", c.OutputType, ioKinds)
}

// TextConfig holds a template whose {{variables}} become inbound ports.
type TextConfig struct {
	Text string `json:"text" mapstructure:"text"`
}

func (TextConfig) Type() NodeType { return NodeTypeText }

func (TextConfig) Validate() error { return nil }

// LLMConfig has no settings; the model call is wired only through its ports.
type LLMConfig struct{}

func (LLMConfig) Type() NodeType { return NodeTypeLLM }

func (LLMConfig) Validate() error { return nil }

// ConditionalConfig routes its input to the true or false branch.
type ConditionalConfig struct {
	Condition string `json:"condition" mapstructure:"condition"`
	Operator  string `json:"operator" mapstructure:"operator"`
}

func (ConditionalConfig) Type() NodeType { return NodeTypeConditional }

func (c ConditionalConfig) Validate() error {
	return oneOf(NodeTypeConditional, "operator", c.Operator, operators)
}

// TransformConfig applies a text transformation.
type TransformConfig struct {
	TransformType  string `json:"transformType" mapstructure:"transformType"`
	CustomFunction string `json:"customFunction" mapstructure:"customFunction"`
}

func (TransformConfig) Type() NodeType { return NodeTypeTransform }

func (c TransformConfig) Validate() error {
	return oneOf(NodeTypeTransform, "transformType", c.TransformType, transformKinds)
}

// MergeConfig joins InputCount inbound streams into one output.
type MergeConfig struct {
	InputCount int `json:"inputCount" mapstructure:"inputCount"`
}

func (MergeConfig) Type() NodeType { return NodeTypeMerge }

func (c MergeConfig) Validate() error {
	if c.InputCount < 1 {
		return &ConfigError{Type: NodeTypeMerge, Field: "inputCount", Reason: "must be at least 1", Value: c.InputCount}
	}
	return nil
}

// FilterConfig drops values that do not match the criteria.
type FilterConfig struct {
	FilterType     string `json:"filterType" mapstructure:"filterType"`
	FilterCriteria string `json:"filterCriteria" mapstructure:"filterCriteria"`
}

func (FilterConfig) Type() NodeType { return NodeTypeFilter }

func (c FilterConfig) Validate() error {
	return oneOf(NodeTypeFilter, "filterType", c.FilterType, filterKinds)
}

// APICallConfig describes an outbound HTTP call.
type APICallConfig struct {
	URL     string `json:"url" mapstructure:"url"`
	Method  string `json:"method" mapstructure:"method"`
	Headers string `json:"headers" mapstructure:"headers"`
}

func (APICallConfig) Type() NodeType { return NodeTypeAPICall }

func (c APICallConfig) Validate() error {
	return oneOf(NodeTypeAPICall, "method", c.Method, httpMethods)
}

// DefaultConfig returns the configuration a freshly dropped node of type t
// starts with.
func DefaultConfig(t NodeType) (Config, error) {
	switch t {
	case NodeTypeInput:
		return InputConfig{InputType: "Text"}, nil
	case NodeTypeOutput:
		return OutputConfig{OutputType: "Text"}, nil
	case NodeTypeText:
		return TextConfig{Text: DefaultTextTemplate}, nil
	case NodeTypeLLM:
		return LLMConfig{}, nil
	case NodeTypeConditional:
		return ConditionalConfig{Operator: "=="}, nil
	case NodeTypeTransform:
		return TransformConfig{TransformType: "uppercase"}, nil
	case NodeTypeMerge:
		return MergeConfig{InputCount: DefaultMergeInputs}, nil
	case NodeTypeFilter:
		return FilterConfig{FilterType: "contains"}, nil
	case NodeTypeAPICall:
		return APICallConfig{Method: "GET"}, nil
	}
	return nil, ErrUnknownNodeType
}

func oneOf(t NodeType, field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &ConfigError{Type: t, Field: field, Reason: "unsupported value", Value: value}
}
