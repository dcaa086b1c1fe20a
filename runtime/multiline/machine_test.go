package multiline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine(t *testing.T) {
	type step struct {
		action      string
		line        string
		expect      string
		expectReady bool
		expectMode  Mode
	}
	var testCases = []struct {
		description string
		steps       []step
	}{
		{
			description: "single line",
			steps: []step{
				{action: "submit", line: "1 + 1", expect: "1 + 1", expectReady: true, expectMode: SingleLine},
			},
		},
		{
			description: "continue, line, empty line",
			steps: []step{
				{action: "continue", line: "a", expectMode: Accumulating},
				{action: "submit", line: "b", expectMode: Accumulating},
				{action: "submit", line: "  ", expect: "a\nb", expectReady: true, expectMode: SingleLine},
			},
		},
		{
			description: "continue twice",
			steps: []step{
				{action: "continue", line: "function f() {", expectMode: Accumulating},
				{action: "continue", line: "  return 1", expectMode: Accumulating},
				{action: "submit", line: "}", expectMode: Accumulating},
				{action: "submit", line: "", expect: "function f() {\n  return 1\n}", expectReady: true, expectMode: SingleLine},
			},
		},
	}
	for _, testCase := range testCases {
		machine := New()
		for i, s := range testCase.steps {
			switch s.action {
			case "continue":
				machine.Continue(s.line)
			default:
				snippet, ready := machine.Submit(s.line)
				assert.Equal(t, s.expectReady, ready, testCase.description, i)
				assert.Equal(t, s.expect, snippet, testCase.description, i)
			}
			assert.Equal(t, s.expectMode, machine.Mode(), testCase.description, i)
		}
		assert.Empty(t, machine.Buffer(), testCase.description)
	}
}

func TestMachine_Paste(t *testing.T) {
	machine := New()
	assert.Equal(t, "a\nb", machine.Paste("a\r\nb"))
	assert.Equal(t, SingleLine, machine.Mode())
	machine.Continue("x")
	machine.Reset()
	assert.Equal(t, SingleLine, machine.Mode())
	assert.Empty(t, machine.Buffer())
}
