package shell

import (
	"context"
	"strings"
)

// GitConfigValue reads a global git setting such as "user.name".
// An unset key, a missing git binary or any other failure yields "".
func GitConfigValue(ctx context.Context, r Runner, key string) string {
	out, err := r.Run(ctx, "git config --global --get "+key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
