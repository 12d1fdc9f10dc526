package cmdargs

import (
	"regexp"
	"strings"
)

// negativeNumber matches a bare negative number token ("-1", "-3.5",
// "-1e9"), tightened from a looser "starts with -digit" check so it
// doesn't also swallow things like "-1x".
var negativeNumber = regexp.MustCompile(`^-\d+(\.\d+)?([eE][+-]?\d+)?$`)

// isLongOption reports whether tok is a long-option token ("--foo",
// "--foo=bar"); "--" itself is excluded.
func isLongOption(tok string) bool {
	return len(tok) > 2 && strings.HasPrefix(tok, "--")
}

// isShortCluster reports whether tok is a short-option token or
// clustered short options ("-x", "-xvf", "-xvalue").
func isShortCluster(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && !strings.HasPrefix(tok, "--")
}

// looksLikeNegativeNumber reports whether tok should be classified as a
// value rather than an option, when the owning command allows negative
// numbers.
func looksLikeNegativeNumber(tok string) bool {
	return negativeNumber.MatchString(tok)
}

// splitLongOption splits "--name=value" into ("name", "value", true) or
// "--name" into ("name", "", false).
func splitLongOption(tok string) (name, value string, hasValue bool) {
	body := tok[2:]
	if idx := strings.IndexByte(body, '='); idx >= 0 {
		return body[:idx], body[idx+1:], true
	}
	return body, "", false
}
