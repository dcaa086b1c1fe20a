package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	var testCases = []struct {
		description string
		apply       func(env *Environment)
		expectNames []string
		expect      map[string]interface{}
	}{
		{
			description: "insertion order",
			apply: func(env *Environment) {
				env.Set("b", 1.0)
				env.Set("a", 2.0)
			},
			expectNames: []string{"b", "a"},
			expect:      map[string]interface{}{"a": 2.0, "b": 1.0},
		},
		{
			description: "shadowing keeps position",
			apply: func(env *Environment) {
				env.Set("x", 1.0)
				env.Set("y", "y")
				env.Set("x", "later")
			},
			expectNames: []string{"x", "y"},
			expect:      map[string]interface{}{"x": "later", "y": "y"},
		},
		{
			description: "delete",
			apply: func(env *Environment) {
				env.Set("x", 1.0)
				env.Set("y", nil)
				env.Delete("x")
			},
			expectNames: []string{"y"},
			expect:      map[string]interface{}{"y": nil},
		},
	}
	for _, testCase := range testCases {
		env := New()
		testCase.apply(env)
		assert.Equal(t, testCase.expectNames, env.Names(), testCase.description)
		actual := map[string]interface{}{}
		env.Range(func(name string, value interface{}) bool {
			actual[name] = value
			return true
		})
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestEnvironment_Clone(t *testing.T) {
	env := New()
	env.Set("x", 1.0)
	clone := env.Clone()
	clone.Set("y", 2.0)
	assert.Equal(t, 1, env.Len())
	assert.Equal(t, 2, clone.Len())
	assert.False(t, env.Has("y"))
	env.Reset()
	assert.Equal(t, 0, env.Len())
	assert.True(t, clone.Has("x"))
}
