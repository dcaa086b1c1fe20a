package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/runtime/script"
)

func TestSession_History(t *testing.T) {
	aSession := New("s1", WithHistoryLimit(3))
	_, ok := aSession.Previous()
	assert.False(t, ok)
	for _, input := range []string{"a", "  ", "b", "c", "d"} {
		aSession.Record(input, "", false)
	}
	assert.Equal(t, []string{"b", "c", "d"}, aSession.History())
	assert.Len(t, aSession.Transcript(), 4)

	var steps []string
	for _, move := range []string{"prev", "prev", "prev", "prev", "next", "next", "next"} {
		var line string
		if move == "prev" {
			line, _ = aSession.Previous()
		} else {
			line, _ = aSession.Next()
		}
		steps = append(steps, line)
	}
	assert.Equal(t, []string{"d", "c", "b", "b", "c", "d", ""}, steps)
	_, ok = aSession.Next()
	assert.False(t, ok)
}

func TestSession_Listeners(t *testing.T) {
	aSession := New("s1")
	var inputs []string
	aSession.RegisterListeners(func(s *Session, record *Record) {
		inputs = append(inputs, record.Input+"="+record.Output)
	})
	aSession.Record("1 + 1", "2", false)
	aSession.Record("", "ignored", false)
	assert.Equal(t, []string{"1 + 1=2"}, inputs)
	aSession.Reset()
	assert.Empty(t, aSession.History())
}

type person struct {
	Name string
	Tags []string
}

func TestSession_BindDecode(t *testing.T) {
	aSession := New("s1")
	require.NoError(t, aSession.Bind("user", map[string]interface{}{"Name": "ann", "Tags": []interface{}{"x", "y"}}))
	value, ok := aSession.Env().Get("user")
	require.True(t, ok)
	obj, ok := value.(*script.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"Name", "Tags"}, obj.Keys())

	decoded := &person{}
	require.NoError(t, aSession.Decode("user", decoded))
	assert.Equal(t, &person{Name: "ann", Tags: []string{"x", "y"}}, decoded)

	require.NoError(t, aSession.Bind("count", 3))
	value, _ = aSession.Env().Get("count")
	assert.Equal(t, float64(3), value)

	assert.Error(t, aSession.Decode("missing", decoded))
}

func TestSession_Decode_Concurrent(t *testing.T) {
	aSession := New("s1")
	require.NoError(t, aSession.Bind("user", map[string]interface{}{"Name": "ann"}))
	var wg sync.WaitGroup
	errs := make([]error, 8)
	names := make([]string, 8)
	for index := range errs {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			decoded := &person{}
			errs[index] = aSession.Decode("user", decoded)
			names[index] = decoded.Name
		}(index)
	}
	wg.Wait()
	for index, err := range errs {
		assert.NoError(t, err)
		assert.Equal(t, "ann", names[index])
	}
}
