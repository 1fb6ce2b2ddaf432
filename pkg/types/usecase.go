// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the pipeline stages: the
// extracted use-case fields, the page geometry, the paginated document, and
// the configuration structs read by the CLI.
package types

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// SectionLabel names one of the fixed use-case sections.
type SectionLabel string

const (
	LabelActors         SectionLabel = "Actors"
	LabelPreconditions  SectionLabel = "Preconditions"
	LabelMainFlow       SectionLabel = "Main Flow"
	LabelPostconditions SectionLabel = "Postconditions"
	LabelExceptions     SectionLabel = "Exceptions"
)

// DefaultLabels is the ordered label list. The order is both the expected
// appearance order in a narrative and the rendering order.
var DefaultLabels = []SectionLabel{
	LabelActors,
	LabelPreconditions,
	LabelMainFlow,
	LabelPostconditions,
	LabelExceptions,
}

// MissingContent is the sentinel content of a section absent from the narrative.
const MissingContent = "No information available."

// Field is one labelled section of a use case. Found is false exactly when
// the label did not occur in the source text; Content then holds MissingContent.
type Field struct {
	Label   SectionLabel `json:"label" yaml:"label"`
	Content string       `json:"content" yaml:"content"`
	Found   bool         `json:"found" yaml:"found"`
}

// FieldSet is the ordered result of one extraction, one Field per label.
type FieldSet []Field

// Get returns the content stored for label.
func (fs FieldSet) Get(label SectionLabel) (string, bool) {
	for _, f := range fs {
		if f.Label == label {
			return f.Content, true
		}
	}
	return "", false
}

// Labels returns the labels in field order.
func (fs FieldSet) Labels() []SectionLabel {
	labels := make([]SectionLabel, len(fs))
	for i, f := range fs {
		labels[i] = f.Label
	}
	return labels
}

// Missing returns the labels whose sections were not found.
func (fs FieldSet) Missing() []SectionLabel {
	var missing []SectionLabel
	for _, f := range fs {
		if !f.Found {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// Narrative renders the fields as "Label: content" lines in order, the same
// shape the extractor reads.
func (fs FieldSet) Narrative() string {
	var b strings.Builder
	for _, f := range fs {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Content)
	}
	return b.String()
}

// MarshalYAML writes the fields as an ordered mapping of label to content.
func (fs FieldSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(f.Label)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Content},
		)
	}
	return node, nil
}

// UnmarshalYAML reads an ordered mapping of label to content. A field whose
// content is MissingContent is marked not found.
func (fs *FieldSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("field set: expected a mapping, got kind %d", node.Kind)
	}
	out := make(FieldSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		label, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("field set: %q must be a string (line %d)", label.Value, value.Line)
		}
		out = append(out, Field{
			Label:   SectionLabel(label.Value),
			Content: value.Value,
			Found:   value.Value != MissingContent,
		})
	}
	*fs = out
	return nil
}

// UseCase is a generated use case as persisted by the store.
type UseCase struct {
	// ID is a content-derived identifier (see store.NewID).
	ID string `json:"id" yaml:"id"`

	// Source names the BRD the use case was generated from.
	Source string `json:"source" yaml:"source"`

	// Focus is the optional user prompt that steered generation.
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`

	// UserStory is the intermediate generated user story.
	UserStory string `json:"user_story" yaml:"user_story"`

	// Narrative is the labelled text the fields were extracted from.
	Narrative string `json:"narrative" yaml:"narrative"`

	Fields FieldSet `json:"fields" yaml:"fields"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
