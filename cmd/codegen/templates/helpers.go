package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	return prefixedCalls(prefix, "", count)
}

func prefixedCalls(prefix, suffix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(suffix)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
