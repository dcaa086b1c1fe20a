package evaluator

// Kind tags how a snippet was executed
type Kind int

const (
	// ParseFailure means the snippet parsed neither as an expression nor as statements
	ParseFailure Kind = iota
	// Expression means the snippet was evaluated as a single expression
	Expression
	// Statement means the snippet was executed as a statement sequence
	Statement
)

func (k Kind) String() string {
	switch k {
	case Expression:
		return "expression"
	case Statement:
		return "statement"
	}
	return "parseFailure"
}

// Result represents the outcome of one evaluation round
type Result struct {
	Kind Kind
	// Value is the raw script value; Undefined for statements without a top-level return
	Value interface{}
	// Output is the captured console text; Printed is set when anything was printed
	Output  string
	Printed bool
	// Text is what the shell displays
	Text    string
	IsError bool
	Err     error
	// Declared lists names merged into the environment, in order
	Declared []string
}

// HasOutput returns true when console output replaced the value display
func (r *Result) HasOutput() bool {
	return r.Printed
}
