package envexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWith(t *testing.T) {
	env := map[string]string{"HOME": "/home/dev", "A": "1", "B": "2"}
	lookup := func(key string) string { return env[key] }

	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "plain", input: "url: mem://localhost/vfs", expect: "url: mem://localhost/vfs"},
		{description: "single", input: "url: ${env.HOME}/.jsrepl", expect: "url: /home/dev/.jsrepl"},
		{description: "multiple", input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset", input: "[${env.MISSING}]", expect: "[]"},
		{description: "unterminated", input: "x ${env.A", expect: "x ${env.A"},
		{description: "invalid key rescans", input: "${env.${env.A}}", expect: "${env.1}"},
		{description: "invalid characters", input: "${env.A-B}", expect: "${env.A-B}"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ExpandWith(testCase.input, lookup), testCase.description)
	}
}
