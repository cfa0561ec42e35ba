package compose

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedCursor = errors.New("malformed cursor")

// Cursor is the resume point of a feed: the origin and sort key of the last
// item handed out. Its encoded form is opaque to clients.
type Cursor struct {
	Origin Origin
	Key    Key
}

// Encode returns base64("<origin>:<unix micro>:id:<id>").
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%c:%d:id:%s", c.Origin, c.Key.At.UnixMicro(), c.Key.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}

	parts := strings.SplitN(string(raw), ":", 4)
	if len(parts) != 4 || parts[2] != "id" || parts[3] == "" || len(parts[0]) != 1 {
		return Cursor{}, ErrMalformedCursor
	}

	origin := Origin(parts[0][0])
	if origin != OriginPost && origin != OriginRepost {
		return Cursor{}, fmt.Errorf("%w: unknown origin %q", ErrMalformedCursor, parts[0])
	}

	micros, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || micros < 0 {
		return Cursor{}, fmt.Errorf("%w: bad timestamp", ErrMalformedCursor)
	}

	return Cursor{Origin: origin, Key: NewKey(time.UnixMicro(micros), parts[3])}, nil
}
