package logtap

import (
	"fmt"
	"strings"
)

func clearOrResetMap[K comparable, V any](m *map[K]V, threshold int) {
	if m == nil {
		return
	}
	if *m == nil {
		*m = make(map[K]V)
		return
	}
	if len(*m) > threshold {
		*m = make(map[K]V)
	} else {
		clear(*m)
	}
}

// sprintMessages joins the arguments with single spaces, like console.log.
func sprintMessages(v ...any) string {
	if len(v) == 0 {
		return ""
	}

	var sb strings.Builder

	for i, arg := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprint(&sb, arg)
	}

	return sb.String()
}
