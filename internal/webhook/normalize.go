// Package webhook turns platform webhook deliveries into message records and
// guards the subscription handshake.
package webhook

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nfrund/wabridge/internal/domain"
)

// maxUnixSeconds is 9999-12-31T23:59:59Z, the last instant ISO-8601 can express with a 4-digit year.
const maxUnixSeconds = 253402300799

// Normalize maps one raw webhook delivery to a received MessageRecord.
// The second return value is false whenever the payload does not carry a
// user text message: missing nesting, non-text message types, an empty body,
// or a payload that is not JSON at all. It never panics on malformed input.
func Normalize(raw []byte) (domain.MessageRecord, bool) {
	if !gjson.ValidBytes(raw) {
		return domain.MessageRecord{}, false
	}
	root := gjson.ParseBytes(raw)

	value, ok := descend(root, "entry.0", "changes.0", "value")
	if !ok {
		return domain.MessageRecord{}, false
	}
	msg, ok := descend(value, "messages.0")
	if !ok || !msg.IsObject() {
		return domain.MessageRecord{}, false
	}

	// Only plain text messages are relayed; images, audio, reactions etc. are dropped.
	if str(msg, "type") != "text" {
		return domain.MessageRecord{}, false
	}

	id := str(msg, "id")
	from := str(msg, "from")
	body := str(msg, "text.body")
	if id == "" || from == "" || body == "" {
		return domain.MessageRecord{}, false
	}

	ts, ok := epochSeconds(msg.Get("timestamp"))
	if !ok {
		return domain.MessageRecord{}, false
	}

	senderName := str(value, "contacts.0.profile.name")
	if senderName == "" {
		senderName = from
	}

	return domain.MessageRecord{
		ID:         id,
		From:       from,
		SenderName: senderName,
		Text:       body,
		Timestamp:  domain.FormatTimestamp(ts),
		Type:       domain.MessageReceived,
	}, true
}

// Valid reports whether raw is well-formed JSON.
func Valid(raw []byte) bool {
	return gjson.ValidBytes(raw)
}

// IsPlatformEvent reports whether the delivery carries a truthy top-level
// "object" marker, which is what distinguishes a platform notification from
// a stray request.
func IsPlatformEvent(raw []byte) bool {
	if !gjson.ValidBytes(raw) {
		return false
	}
	return truthy(gjson.GetBytes(raw, "object"))
}

// descend walks the given path steps one at a time, stopping at the first absent step.
func descend(from gjson.Result, steps ...string) (gjson.Result, bool) {
	cur := from
	for _, step := range steps {
		cur = cur.Get(step)
		if !cur.Exists() {
			return gjson.Result{}, false
		}
	}
	return cur, true
}

// str returns the string at path, or "" when absent or not a JSON string.
func str(r gjson.Result, path string) string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// epochSeconds accepts the timestamp as either a JSON number or a numeric string.
func epochSeconds(r gjson.Result) (time.Time, bool) {
	var secs int64
	switch r.Type {
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(r.Str), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		secs = n
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) {
			return time.Time{}, false
		}
		secs = int64(r.Num)
	default:
		return time.Time{}, false
	}

	if secs < 0 || secs > maxUnixSeconds {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// truthy follows JavaScript truthiness for JSON values.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	default:
		return false
	}
}
