package script

import (
	"reflect"
	"sort"
	"time"
)

// Export converts a script value into plain Go values: maps, slices, float64, string, bool and nil.
// Callables are returned as is.
func Export(value interface{}) interface{} {
	switch actual := value.(type) {
	case UndefinedValue:
		return nil
	case *Array:
		result := make([]interface{}, len(actual.Elements))
		for index, element := range actual.Elements {
			result[index] = Export(element)
		}
		return result
	case *Object:
		result := make(map[string]interface{}, len(actual.keys))
		for _, key := range actual.keys {
			result[key] = Export(actual.values[key])
		}
		return result
	}
	return value
}

// Import converts a Go value into a script value; map keys are sorted
func Import(value interface{}) interface{} {
	switch actual := value.(type) {
	case nil:
		return nil
	case bool, string, float64:
		return actual
	case UndefinedValue, *Array, *Object, *Function, *Native, *Class:
		return actual
	case time.Time:
		return actual.UTC().Format(time.RFC3339Nano)
	case []interface{}:
		elements := make([]interface{}, len(actual))
		for index, element := range actual {
			elements[index] = Import(element)
		}
		return NewArray(elements...)
	case map[string]interface{}:
		keys := make([]string, 0, len(actual))
		for key := range actual {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, key := range keys {
			obj.Set(key, Import(actual[key]))
		}
		return obj
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rValue.Uint())
	case reflect.Float32, reflect.Float64:
		return rValue.Float()
	case reflect.String:
		return rValue.String()
	case reflect.Bool:
		return rValue.Bool()
	case reflect.Ptr, reflect.Interface:
		if rValue.IsNil() {
			return nil
		}
		return Import(rValue.Elem().Interface())
	case reflect.Slice, reflect.Array:
		elements := make([]interface{}, rValue.Len())
		for index := range elements {
			elements[index] = Import(rValue.Index(index).Interface())
		}
		return NewArray(elements...)
	case reflect.Map:
		converted := make(map[string]interface{}, rValue.Len())
		iter := rValue.MapRange()
		for iter.Next() {
			converted[ToString(Import(iter.Key().Interface()))] = iter.Value().Interface()
		}
		return Import(converted)
	}
	return Undefined
}
