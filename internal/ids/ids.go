// Package ids generates the opaque, prefixed identifiers used by all
// domain entities. Ids are stable once assigned and never reused.
package ids

import "github.com/google/uuid"

// Entity prefixes make ids self-describing in logs and stored documents.
const (
	ClassifierPrefix = "clf"
	CategoryPrefix   = "cat"
	RecordPrefix     = "rec"
)

// New returns a fresh id of the form "<prefix>-<uuid>".
func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
