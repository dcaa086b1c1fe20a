package criteria

import (
	"github.com/viant/jsrepl/service/dao"
)

// Matches returns true when every parameter named name accepts value.
// Parameters with other names are ignored; no parameters match everything.
func Matches(name, value string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != name {
			continue
		}
		if !contains(parameter.Values(), value) {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
