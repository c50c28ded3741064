package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jask/tiermaker/internal/tierlist"
)

var errEmpty = errors.New("empty input")

// Tokens are written with the unpadded URL alphabet. Links from the web
// board use btoa (standard alphabet, padded), so decoding tries those too.
var tokenEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

// EncodeShare renders the board as a single URL-fragment-safe token.
//
// The codec does not cap the token length. Fragments have practical limits
// in browsers and chat clients, and boards holding image data exceed them
// quickly; callers decide what to do about that.
func EncodeShare(b tierlist.Board) (string, error) {
	data, err := marshal(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShare turns a token back into a board. Any failure is a *DecodeError
// so the caller can fall back to durable storage.
func DecodeShare(token string) (tierlist.Board, error) {
	token = strings.TrimSpace(token)
	if strings.Contains(token, "%") {
		if unescaped, err := url.PathUnescape(token); err == nil {
			token = unescaped
		}
	}
	if token == "" {
		return tierlist.Board{}, &DecodeError{Stage: "token", Err: errEmpty}
	}
	var (
		data []byte
		err  error
	)
	for _, enc := range tokenEncodings {
		if data, err = enc.DecodeString(token); err == nil {
			break
		}
	}
	if err != nil {
		return tierlist.Board{}, &DecodeError{Stage: "token", Err: err}
	}
	return unmarshal(data)
}

// ShareURL returns base with its fragment replaced by the board's token.
func ShareURL(base string, b tierlist.Board) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	token, err := EncodeShare(b)
	if err != nil {
		return "", err
	}
	u.Fragment = token
	u.RawFragment = ""
	return u.String(), nil
}

// FragmentToken extracts the share token from a link. A bare token is
// returned as is; a URL without a fragment yields "".
func FragmentToken(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.IndexByte(link, '#'); i >= 0 {
		return link[i+1:]
	}
	if strings.Contains(link, "://") {
		return ""
	}
	return link
}
