// Package session produces the opaque identifier that ties a widget instance
// to its server-side conversation history.
package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh session token: a base-36 millisecond timestamp and a
// random UUID, joined by a dash. The server treats it as opaque.
func NewID() string {
	return newID(time.Now())
}

func newID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.FormatInt(now.UnixMilli(), 36) + "-" + random
}
