package cmd

import (
	"fmt"
	"strings"
)

// splitQualifySpec splits one "ACTION=MAIN[:ARGS]" command-line token
// into its three parts, using qualify mode's ':' argument separator.
func splitQualifySpec(spec string) (name, main, args string, err error) {
	eq := strings.IndexByte(spec, '=')
	if eq < 0 {
		return "", "", "", fmt.Errorf("malformed qualify-spec %q: missing '='", spec)
	}
	name = spec[:eq]
	rest := spec[eq+1:]
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		main, args = rest[:colon], rest[colon+1:]
	} else {
		main = rest
	}
	return name, main, args, nil
}
