package domain

import "fmt"

// LinkKey is the identity of a link: the ordered pair of endpoint names
type LinkKey struct {
	Source string
	Target string
}

// String renders the key as "source->target"
func (k LinkKey) String() string {
	return fmt.Sprintf("%s->%s", k.Source, k.Target)
}

// Link is a directed connection between two switches.
// Source and Target index into the node list of the graph holding the link.
type Link struct {
	Source     int    `json:"source"`
	Target     int    `json:"target"`
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
	Type       int    `json:"type"`
	LinkNum    int    `json:"linknum"`
}

// Key returns the identity of the link
func (l *Link) Key() LinkKey {
	return LinkKey{Source: l.SourceName, Target: l.TargetName}
}
