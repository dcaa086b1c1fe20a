package script

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString_Numbers(t *testing.T) {
	var testCases = []struct {
		value  float64
		expect string
	}{
		{value: 0, expect: "0"},
		{value: 42, expect: "42"},
		{value: -1.5, expect: "-1.5"},
		{value: 0.000001, expect: "0.000001"},
		{value: 0.0000001, expect: "1e-7"},
		{value: 123456789012345680000, expect: "123456789012345680000"},
		{value: 1e21, expect: "1e+21"},
		{value: 1.5e300, expect: "1.5e+300"},
		{value: math.NaN(), expect: "NaN"},
		{value: math.Inf(-1), expect: "-Infinity"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ToString(testCase.value), testCase.expect)
	}
}

func TestToNumber(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      float64
	}{
		{description: "blank string", value: "  ", expect: 0},
		{description: "hex string", value: "0x10", expect: 16},
		{description: "padded", value: " 12 ", expect: 12},
		{description: "true", value: true, expect: 1},
		{description: "null", value: nil, expect: 0},
		{description: "single element array", value: NewArray(float64(7)), expect: 7},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ToNumber(testCase.value), testCase.description)
	}
	assert.True(t, math.IsNaN(ToNumber("abc")))
	assert.True(t, math.IsNaN(ToNumber(Undefined)))
}

func TestExportImport(t *testing.T) {
	value := Import(map[string]interface{}{"b": []int{1, 2}, "a": "x"})
	obj, ok := value.(*Object)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	assert.Equal(t, map[string]interface{}{"a": "x", "b": []interface{}{float64(1), float64(2)}}, Export(obj))
	assert.Nil(t, Export(Undefined))
}
