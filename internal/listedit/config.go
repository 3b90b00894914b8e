package listedit

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/mdlist/internal/logutil"
	"github.com/jcorbin/mdlist/internal/scandown"
)

// FallbackMarker is used when no default markers are configured.
const FallbackMarker = "-"

// ErrInvalidMarker is returned by Config.Validate for unrecognized default
// marker templates.
var ErrInvalidMarker = errors.New("invalid marker template")

// BlankItemBehaviour decides what Continue does on a list item with no content.
type BlankItemBehaviour int

const (
	// OutdentListItem moves the blank item up one level.
	OutdentListItem BlankItemBehaviour = iota
	// RemoveListItem deletes the blank item's line.
	RemoveListItem
)

// ParseBlankItemBehaviour parses a behaviour name, case insensitively.
func ParseBlankItemBehaviour(s string) (BlankItemBehaviour, error) {
	switch strings.ToLower(s) {
	case "outdent":
		return OutdentListItem, nil
	case "removelistitem", "remove":
		return RemoveListItem, nil
	}
	return 0, fmt.Errorf("unknown blank list item behaviour %q", s)
}

func (b BlankItemBehaviour) String() string {
	switch b {
	case OutdentListItem:
		return "outdent"
	case RemoveListItem:
		return "removeListItem"
	default:
		return fmt.Sprintf("InvalidBehaviour%d", int(b))
	}
}

// UnmarshalYAML decodes a behaviour name.
func (b *BlankItemBehaviour) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseBlankItemBehaviour(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML encodes the behaviour name.
func (b BlankItemBehaviour) MarshalYAML() (interface{}, error) { return b.String(), nil }

// Config holds user preferences that operations consult.
type Config struct {
	BlankItemBehaviour BlankItemBehaviour `yaml:"blank_list_item_behaviour"`
	// DefaultMarkers are cycled by level when a level has no marker in
	// the document.
	DefaultMarkers []string `yaml:"default_markers"`
}

// DefaultConfig returns the configuration used absent any user preference.
func DefaultConfig() Config {
	return Config{
		BlankItemBehaviour: OutdentListItem,
		DefaultMarkers:     []string{FallbackMarker},
	}
}

// Validate checks that every default marker is a recognized list marker.
// An empty DefaultMarkers is valid: FallbackMarker is used instead.
func (cfg Config) Validate() error {
	switch cfg.BlankItemBehaviour {
	case OutdentListItem, RemoveListItem:
	default:
		return fmt.Errorf("invalid blank list item behaviour %v", cfg.BlankItemBehaviour)
	}
	for i, m := range cfg.DefaultMarkers {
		if _, marker := scandown.ParseMarker(m); !marker.Valid() {
			return fmt.Errorf("%w: default_markers[%d] = %q", ErrInvalidMarker, i, m)
		}
	}
	return nil
}

// FullMarker returns the marker for a level: the table's entry if it has one,
// otherwise the default marker for that level.
func (cfg Config) FullMarker(table MarkerTable, level int) string {
	if m, ok := table.Lookup(level); ok {
		return m
	}
	return cfg.DefaultMarker(level)
}

// DefaultMarker cycles through DefaultMarkers by level.
func (cfg Config) DefaultMarker(level int) string {
	n := len(cfg.DefaultMarkers)
	if n == 0 {
		logger := logutil.Component("listedit")
		logger.Warn().Int("level", level).Msg("no default markers configured, using " + FallbackMarker)
		return FallbackMarker
	}
	if level < 0 {
		level = 0
	}
	return cfg.DefaultMarkers[level%n]
}
