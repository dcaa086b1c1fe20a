package script

// Node is any syntax tree node
type Node interface {
	node()
}

// Expression is an expression node; patterns are expressions too
type Expression interface {
	Node
	expression()
}

// Statement is a statement node
type Statement interface {
	Node
	statement()
}

// Program is a parsed statement sequence
type Program struct {
	Body   []Statement
	Source string
}

type (
	NumberLiteral struct {
		Value float64
	}

	StringLiteral struct {
		Value string
	}

	BooleanLiteral struct {
		Value bool
	}

	NullLiteral struct{}

	TemplateLiteral struct {
		Quasis      []string
		Expressions []Expression
	}

	Ident struct {
		Name string
	}

	ThisExpression struct{}

	SuperCall struct {
		Args []Expression
	}

	SuperMember struct {
		Property string
	}

	ArrayLiteral struct {
		Elements []Expression
	}

	Property struct {
		Key      string
		Computed Expression
		Value    Expression
		Spread   bool
	}

	ObjectLiteral struct {
		Properties []*Property
	}

	Param struct {
		Target  Expression
		Default Expression
		Rest    bool
	}

	FunctionLiteral struct {
		Name     string
		Params   []*Param
		Body     []Statement
		ExprBody Expression
		Arrow    bool
		Method   bool
		Source   string
	}

	ClassMember struct {
		Name     string
		Static   bool
		Function *FunctionLiteral
		Value    Expression
		Field    bool
	}

	ClassLiteral struct {
		Name        string
		Super       Expression
		Constructor *FunctionLiteral
		Members     []*ClassMember
		Source      string
	}

	UnaryExpression struct {
		Op      string
		Operand Expression
	}

	UpdateExpression struct {
		Op     string
		Prefix bool
		Target Expression
	}

	BinaryExpression struct {
		Op    string
		Left  Expression
		Right Expression
	}

	LogicalExpression struct {
		Op    string
		Left  Expression
		Right Expression
	}

	ConditionalExpression struct {
		Test       Expression
		Consequent Expression
		Alternate  Expression
	}

	AssignmentExpression struct {
		Op     string
		Target Expression
		Value  Expression
	}

	MemberExpression struct {
		Object   Expression
		Property string
		Computed Expression
		Optional bool
	}

	CallExpression struct {
		Callee   Expression
		Args     []Expression
		Optional bool
	}

	NewExpression struct {
		Callee Expression
		Args   []Expression
	}

	SpreadElement struct {
		Argument Expression
	}

	OptionalChain struct {
		Expression Expression
	}

	SequenceExpression struct {
		Expressions []Expression
	}

	PatternElement struct {
		Target  Expression
		Default Expression
		Rest    bool
	}

	ArrayPattern struct {
		Elements []*PatternElement
	}

	PatternProperty struct {
		Key      string
		Computed Expression
		Target   Expression
		Default  Expression
		Rest     bool
	}

	ObjectPattern struct {
		Properties []*PatternProperty
	}
)

type (
	Declarator struct {
		Target Expression
		Init   Expression
	}

	VariableDeclaration struct {
		Kind         string
		Declarations []*Declarator
	}

	FunctionDeclaration struct {
		Function *FunctionLiteral
	}

	ClassDeclaration struct {
		Class *ClassLiteral
	}

	ExpressionStatement struct {
		Expression Expression
	}

	BlockStatement struct {
		Body []Statement
	}

	IfStatement struct {
		Test       Expression
		Consequent Statement
		Alternate  Statement
	}

	ForStatement struct {
		Init   Statement
		Test   Expression
		Update Expression
		Body   Statement
	}

	ForOfStatement struct {
		Kind     string
		Target   Expression
		Iterable Expression
		Body     Statement
		In       bool
	}

	WhileStatement struct {
		Test Expression
		Body Statement
	}

	DoWhileStatement struct {
		Body Statement
		Test Expression
	}

	ReturnStatement struct {
		Argument Expression
	}

	BreakStatement struct{}

	ContinueStatement struct{}

	ThrowStatement struct {
		Argument Expression
	}

	TryStatement struct {
		Block     *BlockStatement
		Param     Expression
		Handler   *BlockStatement
		Finalizer *BlockStatement
	}

	SwitchCase struct {
		Test Expression
		Body []Statement
	}

	SwitchStatement struct {
		Discriminant Expression
		Cases        []*SwitchCase
	}

	EmptyStatement struct{}
)

func (*NumberLiteral) node()         {}
func (*StringLiteral) node()         {}
func (*BooleanLiteral) node()        {}
func (*NullLiteral) node()           {}
func (*TemplateLiteral) node()       {}
func (*Ident) node()                 {}
func (*ThisExpression) node()        {}
func (*SuperCall) node()             {}
func (*SuperMember) node()           {}
func (*ArrayLiteral) node()          {}
func (*ObjectLiteral) node()         {}
func (*FunctionLiteral) node()       {}
func (*ClassLiteral) node()          {}
func (*UnaryExpression) node()       {}
func (*UpdateExpression) node()      {}
func (*BinaryExpression) node()      {}
func (*LogicalExpression) node()     {}
func (*ConditionalExpression) node() {}
func (*AssignmentExpression) node()  {}
func (*MemberExpression) node()      {}
func (*CallExpression) node()        {}
func (*NewExpression) node()         {}
func (*SpreadElement) node()         {}
func (*OptionalChain) node()         {}
func (*SequenceExpression) node()    {}
func (*ArrayPattern) node()          {}
func (*ObjectPattern) node()         {}

func (*NumberLiteral) expression()         {}
func (*StringLiteral) expression()         {}
func (*BooleanLiteral) expression()        {}
func (*NullLiteral) expression()           {}
func (*TemplateLiteral) expression()       {}
func (*Ident) expression()                 {}
func (*ThisExpression) expression()        {}
func (*SuperCall) expression()             {}
func (*SuperMember) expression()           {}
func (*ArrayLiteral) expression()          {}
func (*ObjectLiteral) expression()         {}
func (*FunctionLiteral) expression()       {}
func (*ClassLiteral) expression()          {}
func (*UnaryExpression) expression()       {}
func (*UpdateExpression) expression()      {}
func (*BinaryExpression) expression()      {}
func (*LogicalExpression) expression()     {}
func (*ConditionalExpression) expression() {}
func (*AssignmentExpression) expression()  {}
func (*MemberExpression) expression()      {}
func (*CallExpression) expression()        {}
func (*NewExpression) expression()         {}
func (*SpreadElement) expression()         {}
func (*OptionalChain) expression()         {}
func (*SequenceExpression) expression()    {}
func (*ArrayPattern) expression()          {}
func (*ObjectPattern) expression()         {}

func (*VariableDeclaration) node()  {}
func (*FunctionDeclaration) node()  {}
func (*ClassDeclaration) node()     {}
func (*ExpressionStatement) node()  {}
func (*BlockStatement) node()       {}
func (*IfStatement) node()          {}
func (*ForStatement) node()         {}
func (*ForOfStatement) node()       {}
func (*WhileStatement) node()       {}
func (*DoWhileStatement) node()     {}
func (*ReturnStatement) node()      {}
func (*BreakStatement) node()       {}
func (*ContinueStatement) node()    {}
func (*ThrowStatement) node()       {}
func (*TryStatement) node()         {}
func (*SwitchStatement) node()      {}
func (*EmptyStatement) node()       {}

func (*VariableDeclaration) statement() {}
func (*FunctionDeclaration) statement() {}
func (*ClassDeclaration) statement()    {}
func (*ExpressionStatement) statement() {}
func (*BlockStatement) statement()      {}
func (*IfStatement) statement()         {}
func (*ForStatement) statement()        {}
func (*ForOfStatement) statement()      {}
func (*WhileStatement) statement()      {}
func (*DoWhileStatement) statement()    {}
func (*ReturnStatement) statement()     {}
func (*BreakStatement) statement()      {}
func (*ContinueStatement) statement()   {}
func (*ThrowStatement) statement()      {}
func (*TryStatement) statement()        {}
func (*SwitchStatement) statement()     {}
func (*EmptyStatement) statement()      {}
