package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Usage(t *testing.T) {
	usages := make([]string, 0)
	for _, c := range All() {
		usages = append(usages, c.Usage())
	}
	assert.Equal(t, []string{"!help", "!play <url>", "!ban <user>", "!kick <user>", "!stats"}, usages)
}
