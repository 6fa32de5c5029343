package ids

import "github.com/segmentio/ksuid"

// New returns a sortable 27-char identifier.
func New() string {
	return ksuid.New().String()
}
