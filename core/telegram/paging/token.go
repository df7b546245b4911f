package paging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedToken reports callback data that does not follow the
// <namespace>_<key>_<position> shape.
var ErrMalformedToken = errors.New("paging: malformed callback token")

// EncodeToken builds callback data of the form <namespace>_<key>_<position>.
// The key may itself contain underscores; DecodeToken compensates by
// splitting the position off the right edge.
func EncodeToken(namespace, key string, position int) string {
	return fmt.Sprintf("%s_%s_%d", namespace, key, position)
}

// DecodeToken extracts the session key and requested position from token.
// The namespace prefix is stripped from the left, the position from the
// right, so underscores inside the key survive the round trip.
func DecodeToken(namespace, token string) (key string, position int, err error) {
	prefix := namespace + "_"
	if !strings.HasPrefix(token, prefix) {
		return "", 0, fmt.Errorf("%w: %q lacks namespace %q", ErrMalformedToken, token, namespace)
	}
	rest := token[len(prefix):]

	sep := strings.LastIndex(rest, "_")
	if sep <= 0 || sep == len(rest)-1 {
		return "", 0, fmt.Errorf("%w: %q has no position suffix", ErrMalformedToken, token)
	}

	position, err = strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q has non-numeric position", ErrMalformedToken, token)
	}
	return rest[:sep], position, nil
}
