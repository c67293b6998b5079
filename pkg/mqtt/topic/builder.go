package topic

import (
	"fmt"
	"strings"
)

// Topic segments shared with downstream consumers of published selections.
// Changing these values breaks existing subscribers.
const (
	// SuffixSelection carries saved configurations.
	// Structure: {root}/selection/{source}/{modelId}
	SuffixSelection = "selection"

	// Wildcard is the single-level wildcard "+".
	Wildcard = "+"
)

// Builder constructs MQTT topic strings under a common root.
type Builder struct {
	// root is the base namespace for all topics (e.g. "voltura/v1").
	root string
}

// NewBuilder creates a Builder for the given root namespace.
// Surrounding slashes are trimmed.
func NewBuilder(root string) *Builder {
	return &Builder{root: strings.Trim(root, "/")}
}

// Selection returns the topic a saved configuration is published on.
func (b *Builder) Selection(source, modelID string) string {
	return b.build(SuffixSelection, segment(source), segment(modelID))
}

// SelectionWildcard matches every model for one source.
// Result: {root}/selection/{source}/+
func (b *Builder) SelectionWildcard(source string) string {
	return b.build(SuffixSelection, segment(source), Wildcard)
}

func (b *Builder) build(parts ...string) string {
	return fmt.Sprintf("%s/%s", b.root, strings.Join(parts, "/"))
}

// segment keeps caller-provided ids from adding levels or wildcards.
func segment(s string) string {
	return strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(s)
}
