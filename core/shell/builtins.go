package shell

import "sort"

// AllBuiltins holds a list of all registered shell builtins keyed by name.
var AllBuiltins = make(map[string]BuiltinFunc)

// BuiltinFunc builds the action for a builtin from its arguments.
type BuiltinFunc func(args []string) Action

// ExitBuiltin quits the shell. Arguments are ignored and the code is always 0.
func ExitBuiltin(args []string) Action {
	return Exit{Code: 0}
}

var _ BuiltinFunc = ExitBuiltin

// ListBuiltins returns the names of the registered builtins in sorted order.
func ListBuiltins() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	AllBuiltins["exit"] = ExitBuiltin
}
