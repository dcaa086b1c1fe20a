package script

import (
	"strconv"
	"strings"
)

type parser struct {
	source  string
	tokens  []Token
	pos     int
	lastEnd int
	noIn    bool
}

// Parse parses source as a statement sequence; top-level return is allowed.
func Parse(source string) (*Program, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	var body []Statement
	for p.peek().Kind != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return &Program{Body: body, Source: source}, nil
}

// ParseExpression parses source as exactly one expression
func ParseExpression(source string) (Expression, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == EOF {
		return nil, p.unexpected(p.peek())
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, p.unexpected(tok)
	}
	return expr, nil
}

func newParser(source string) (*parser, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return &parser{source: source, tokens: tokens}, nil
}

func (p *parser) peek() *Token {
	return &p.tokens[p.pos]
}

func (p *parser) peekAt(n int) *Token {
	if p.pos+n >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}
	return &p.tokens[p.pos+n]
}

func (p *parser) next() *Token {
	tok := &p.tokens[p.pos]
	if tok.Kind != EOF {
		p.pos++
		p.lastEnd = tok.Offset + len(tok.Text)
	}
	return tok
}

func (p *parser) is(text string) bool {
	return p.peek().Is(text)
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) error {
	if !p.is(text) {
		return p.unexpected(p.peek())
	}
	p.next()
	return nil
}

func (p *parser) unexpected(tok *Token) error {
	switch tok.Kind {
	case EOF:
		return NewError(SyntaxError, "Unexpected end of input")
	case Identifier:
		return NewError(SyntaxError, "Unexpected identifier '%s'", tok.Text)
	case Number:
		return NewError(SyntaxError, "Unexpected number")
	case String:
		return NewError(SyntaxError, "Unexpected string")
	case Template:
		return NewError(SyntaxError, "Unexpected template string")
	}
	return NewError(SyntaxError, "Unexpected token '%s'", tok.Text)
}

func (p *parser) consumeSemicolon() error {
	if p.accept(";") {
		return nil
	}
	tok := p.peek()
	if tok.Kind == EOF || tok.Is("}") || tok.NewlineBefore {
		return nil
	}
	return p.unexpected(tok)
}

func (p *parser) identifier() (string, error) {
	tok := p.peek()
	if tok.Kind != Identifier {
		return "", p.unexpected(tok)
	}
	p.next()
	return tok.Text, nil
}

// propertyName accepts identifiers, keywords, strings and numbers
func (p *parser) propertyName() (string, error) {
	tok := p.peek()
	switch tok.Kind {
	case Identifier, Keyword:
		p.next()
		return tok.Text, nil
	case String:
		p.next()
		return unquote(tok.Text[1 : len(tok.Text)-1])
	case Number:
		p.next()
		value, err := parseNumber(tok.Text)
		if err != nil {
			return "", err
		}
		return numberToString(value), nil
	}
	return "", p.unexpected(tok)
}

func (p *parser) parseStatement() (Statement, error) {
	tok := p.peek()
	if tok.Kind == Keyword {
		switch tok.Text {
		case "var", "let", "const":
			decl, err := p.parseVariableDeclaration()
			if err != nil {
				return nil, err
			}
			if err = p.checkInitializers(decl); err != nil {
				return nil, err
			}
			return decl, p.consumeSemicolon()
		case "function":
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			if fn.Name == "" {
				return nil, NewError(SyntaxError, "Function statements require a function name")
			}
			return &FunctionDeclaration{Function: fn}, nil
		case "class":
			class, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			if class.Name == "" {
				return nil, NewError(SyntaxError, "Unexpected token '{'")
			}
			return &ClassDeclaration{Class: class}, nil
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			p.next()
			test, err := p.parseParenthesized()
			if err != nil {
				return nil, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return &WhileStatement{Test: test, Body: body}, nil
		case "do":
			p.next()
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			if err = p.expect("while"); err != nil {
				return nil, err
			}
			test, err := p.parseParenthesized()
			if err != nil {
				return nil, err
			}
			p.accept(";")
			return &DoWhileStatement{Body: body, Test: test}, nil
		case "return":
			p.next()
			stmt := &ReturnStatement{}
			if next := p.peek(); !(next.Kind == EOF || next.Is(";") || next.Is("}") || next.NewlineBefore) {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				stmt.Argument = arg
			}
			return stmt, p.consumeSemicolon()
		case "break":
			p.next()
			return &BreakStatement{}, p.consumeSemicolon()
		case "continue":
			p.next()
			return &ContinueStatement{}, p.consumeSemicolon()
		case "throw":
			p.next()
			if p.peek().NewlineBefore {
				return nil, NewError(SyntaxError, "Illegal newline after throw")
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ThrowStatement{Argument: arg}, p.consumeSemicolon()
		case "try":
			return p.parseTry()
		case "switch":
			return p.parseSwitch()
		}
	}
	if tok.Is("{") {
		return p.parseBlock()
	}
	if tok.Is(";") {
		p.next()
		return &EmptyStatement{}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{Expression: expr}, p.consumeSemicolon()
}

func (p *parser) parseBlock() (*BlockStatement, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	block := &BlockStatement{}
	for !p.is("}") {
		if p.peek().Kind == EOF {
			return nil, p.unexpected(p.peek())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.next()
	return block, nil
}

func (p *parser) parseParenthesized() (Expression, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return expr, p.expect(")")
}

func (p *parser) parseVariableDeclaration() (*VariableDeclaration, error) {
	decl := &VariableDeclaration{Kind: p.next().Text}
	for {
		target, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		declarator := &Declarator{Target: target}
		if p.accept("=") {
			if declarator.Init, err = p.parseAssignment(); err != nil {
				return nil, err
			}
		}
		decl.Declarations = append(decl.Declarations, declarator)
		if !p.accept(",") {
			break
		}
	}
	return decl, nil
}

func (p *parser) checkInitializers(decl *VariableDeclaration) error {
	for _, declarator := range decl.Declarations {
		if declarator.Init != nil {
			continue
		}
		if decl.Kind == "const" {
			return NewError(SyntaxError, "Missing initializer in const declaration")
		}
		if _, ok := declarator.Target.(*Ident); !ok {
			return NewError(SyntaxError, "Missing initializer in destructuring declaration")
		}
	}
	return nil
}

func (p *parser) parseBindingTarget() (Expression, error) {
	switch {
	case p.is("["):
		return p.parseArrayPattern()
	case p.is("{"):
		return p.parseObjectPattern()
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	return &Ident{Name: name}, nil
}

func (p *parser) parseArrayPattern() (*ArrayPattern, error) {
	p.next()
	pattern := &ArrayPattern{}
	for !p.is("]") {
		if p.accept(",") {
			pattern.Elements = append(pattern.Elements, nil)
			continue
		}
		element := &PatternElement{Rest: p.accept("...")}
		target, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		element.Target = target
		if !element.Rest && p.accept("=") {
			if element.Default, err = p.parseAssignment(); err != nil {
				return nil, err
			}
		}
		pattern.Elements = append(pattern.Elements, element)
		if !p.is("]") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return pattern, nil
}

func (p *parser) parseObjectPattern() (*ObjectPattern, error) {
	p.next()
	pattern := &ObjectPattern{}
	for !p.is("}") {
		property := &PatternProperty{}
		var err error
		if p.accept("...") {
			name, err := p.identifier()
			if err != nil {
				return nil, err
			}
			property.Rest = true
			property.Target = &Ident{Name: name}
		} else {
			if p.accept("[") {
				if property.Computed, err = p.parseAssignment(); err != nil {
					return nil, err
				}
				if err = p.expect("]"); err != nil {
					return nil, err
				}
			} else {
				shorthand := p.peek().Kind == Identifier
				if property.Key, err = p.propertyName(); err != nil {
					return nil, err
				}
				if !shorthand && !p.is(":") {
					return nil, p.unexpected(p.peek())
				}
			}
			if p.accept(":") {
				if property.Target, err = p.parseBindingTarget(); err != nil {
					return nil, err
				}
			} else {
				property.Target = &Ident{Name: property.Key}
			}
			if p.accept("=") {
				if property.Default, err = p.parseAssignment(); err != nil {
					return nil, err
				}
			}
		}
		pattern.Properties = append(pattern.Properties, property)
		if !p.is("}") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return pattern, nil
}

func (p *parser) parseIf() (Statement, error) {
	p.next()
	test, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}
	stmt := &IfStatement{Test: test}
	if stmt.Consequent, err = p.parseStatement(); err != nil {
		return nil, err
	}
	if p.accept("else") {
		if stmt.Alternate, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseFor() (Statement, error) {
	p.next()
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var init Statement
	if !p.is(";") {
		p.noIn = true
		if p.is("var") || p.is("let") || p.is("const") {
			decl, err := p.parseVariableDeclaration()
			if err != nil {
				p.noIn = false
				return nil, err
			}
			if loop, ok, err := p.parseForEach(decl.Kind, decl); ok || err != nil {
				return loop, err
			}
			if err = p.checkInitializers(decl); err != nil {
				return nil, err
			}
			init = decl
		} else {
			expr, err := p.parseExpression()
			if err != nil {
				p.noIn = false
				return nil, err
			}
			if tok := p.peek(); tok.Is("in") || (tok.Kind == Identifier && tok.Text == "of") {
				target, err := toPattern(expr)
				if err != nil {
					p.noIn = false
					return nil, err
				}
				decl := &VariableDeclaration{Declarations: []*Declarator{{Target: target}}}
				loop, _, err := p.parseForEach("", decl)
				return loop, err
			}
			init = &ExpressionStatement{Expression: expr}
		}
		p.noIn = false
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	stmt := &ForStatement{Init: init}
	var err error
	if !p.is(";") {
		if stmt.Test, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err = p.expect(";"); err != nil {
		return nil, err
	}
	if !p.is(")") {
		if stmt.Update, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err = p.expect(")"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseForEach completes a for-of or for-in loop once the head target is known
func (p *parser) parseForEach(kind string, decl *VariableDeclaration) (Statement, bool, error) {
	tok := p.peek()
	isOf := tok.Kind == Identifier && tok.Text == "of"
	isIn := tok.Is("in")
	if !isOf && !isIn {
		return nil, false, nil
	}
	p.noIn = false
	if len(decl.Declarations) != 1 || decl.Declarations[0].Init != nil {
		return nil, true, NewError(SyntaxError, "Invalid left-hand side in for-loop")
	}
	p.next()
	iterable, err := p.parseAssignment()
	if err != nil {
		return nil, true, err
	}
	if err = p.expect(")"); err != nil {
		return nil, true, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, true, err
	}
	return &ForOfStatement{Kind: kind, Target: decl.Declarations[0].Target, Iterable: iterable, Body: body, In: isIn}, true, nil
}

func (p *parser) parseTry() (Statement, error) {
	p.next()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &TryStatement{Block: block}
	if p.accept("catch") {
		if p.accept("(") {
			if stmt.Param, err = p.parseBindingTarget(); err != nil {
				return nil, err
			}
			if err = p.expect(")"); err != nil {
				return nil, err
			}
		}
		if stmt.Handler, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	if p.accept("finally") {
		if stmt.Finalizer, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, NewError(SyntaxError, "Missing catch or finally after try")
	}
	return stmt, nil
}

func (p *parser) parseSwitch() (Statement, error) {
	p.next()
	discriminant, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}
	if err = p.expect("{"); err != nil {
		return nil, err
	}
	stmt := &SwitchStatement{Discriminant: discriminant}
	hasDefault := false
	for !p.accept("}") {
		switchCase := &SwitchCase{}
		switch {
		case p.accept("case"):
			if switchCase.Test, err = p.parseExpression(); err != nil {
				return nil, err
			}
		case p.accept("default"):
			if hasDefault {
				return nil, NewError(SyntaxError, "More than one default clause in switch statement")
			}
			hasDefault = true
		default:
			return nil, p.unexpected(p.peek())
		}
		if err = p.expect(":"); err != nil {
			return nil, err
		}
		for !p.is("case") && !p.is("default") && !p.is("}") {
			if p.peek().Kind == EOF {
				return nil, p.unexpected(p.peek())
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			switchCase.Body = append(switchCase.Body, body)
		}
		stmt.Cases = append(stmt.Cases, switchCase)
	}
	return stmt, nil
}

func (p *parser) parseExpression() (Expression, error) {
	expr, err := p.parseAssignment()
	if err != nil || !p.is(",") {
		return expr, err
	}
	sequence := &SequenceExpression{Expressions: []Expression{expr}}
	for p.accept(",") {
		if expr, err = p.parseAssignment(); err != nil {
			return nil, err
		}
		sequence.Expressions = append(sequence.Expressions, expr)
	}
	return sequence, nil
}

var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
	"&&=": true, "||=": true, "??=": true,
}

func (p *parser) parseAssignment() (Expression, error) {
	if p.isArrowAhead() {
		return p.parseArrow()
	}
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != Punctuator || !assignmentOperators[tok.Text] {
		return left, nil
	}
	p.next()
	target := left
	if tok.Text == "=" {
		if target, err = toPattern(left); err != nil {
			return nil, err
		}
	} else if !isSimpleTarget(left) {
		return nil, NewError(SyntaxError, "Invalid left-hand side in assignment")
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &AssignmentExpression{Op: tok.Text, Target: target, Value: value}, nil
}

func isSimpleTarget(expr Expression) bool {
	switch expr.(type) {
	case *Ident, *MemberExpression:
		return true
	}
	return false
}

// toPattern converts an expression on the left of '=' into an assignment target
func toPattern(expr Expression) (Expression, error) {
	switch actual := expr.(type) {
	case *Ident, *MemberExpression, *ArrayPattern, *ObjectPattern:
		return expr, nil
	case *ArrayLiteral:
		pattern := &ArrayPattern{}
		for _, element := range actual.Elements {
			if element == nil {
				pattern.Elements = append(pattern.Elements, nil)
				continue
			}
			item := &PatternElement{}
			if spread, ok := element.(*SpreadElement); ok {
				item.Rest = true
				element = spread.Argument
			}
			if assign, ok := element.(*AssignmentExpression); ok && assign.Op == "=" {
				item.Default = assign.Value
				element = assign.Target
			}
			target, err := toPattern(element)
			if err != nil {
				return nil, err
			}
			item.Target = target
			pattern.Elements = append(pattern.Elements, item)
		}
		return pattern, nil
	case *ObjectLiteral:
		pattern := &ObjectPattern{}
		for _, property := range actual.Properties {
			item := &PatternProperty{Key: property.Key, Computed: property.Computed}
			value := property.Value
			if property.Spread {
				item.Rest = true
			}
			if assign, ok := value.(*AssignmentExpression); ok && assign.Op == "=" {
				item.Default = assign.Value
				value = assign.Target
			}
			target, err := toPattern(value)
			if err != nil {
				return nil, err
			}
			item.Target = target
			pattern.Properties = append(pattern.Properties, item)
		}
		return pattern, nil
	}
	return nil, NewError(SyntaxError, "Invalid left-hand side in assignment")
}

// isArrowAhead reports whether the upcoming tokens start an arrow function
func (p *parser) isArrowAhead() bool {
	tok := p.peek()
	if tok.Kind == Identifier {
		return p.peekAt(1).Is("=>")
	}
	if !tok.Is("(") {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		t := &p.tokens[i]
		switch {
		case t.Kind == EOF:
			return false
		case t.Is("(") || t.Is("[") || t.Is("{"):
			depth++
		case t.Is(")") || t.Is("]") || t.Is("}"):
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Is("=>")
			}
		}
	}
	return false
}

func (p *parser) parseArrow() (Expression, error) {
	start := p.peek().Offset
	fn := &FunctionLiteral{Arrow: true}
	if p.peek().Kind == Identifier {
		fn.Params = []*Param{{Target: &Ident{Name: p.next().Text}}}
	} else {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		fn.Params = params
	}
	if err := p.expect("=>"); err != nil {
		return nil, err
	}
	noIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = noIn }()
	if p.is("{") {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.Body = block.Body
	} else {
		body, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		fn.ExprBody = body
	}
	fn.Source = p.source[start:p.lastEnd]
	return fn, nil
}

func (p *parser) parseParams() ([]*Param, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []*Param
	for !p.is(")") {
		param := &Param{Rest: p.accept("...")}
		target, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		param.Target = target
		if !param.Rest && p.accept("=") {
			if param.Default, err = p.parseAssignment(); err != nil {
				return nil, err
			}
		}
		params = append(params, param)
		if param.Rest && !p.is(")") {
			return nil, NewError(SyntaxError, "Rest parameter must be last formal parameter")
		}
		if !p.is(")") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return params, nil
}

func (p *parser) parseFunctionRest(fn *FunctionLiteral, start int) (*FunctionLiteral, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	fn.Params = params
	noIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = noIn }()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = block.Body
	fn.Source = p.source[start:p.lastEnd]
	return fn, nil
}

func (p *parser) parseFunction() (*FunctionLiteral, error) {
	start := p.next().Offset
	fn := &FunctionLiteral{}
	if p.peek().Kind == Identifier {
		fn.Name = p.next().Text
	}
	return p.parseFunctionRest(fn, start)
}

func (p *parser) parseClass() (*ClassLiteral, error) {
	start := p.next().Offset
	class := &ClassLiteral{}
	if p.peek().Kind == Identifier {
		class.Name = p.next().Text
	}
	var err error
	if p.accept("extends") {
		if class.Super, err = p.parseCallMember(); err != nil {
			return nil, err
		}
	}
	if err = p.expect("{"); err != nil {
		return nil, err
	}
	for !p.accept("}") {
		if p.accept(";") {
			continue
		}
		if p.peek().Kind == EOF {
			return nil, p.unexpected(p.peek())
		}
		member := &ClassMember{}
		if tok := p.peek(); tok.Kind == Identifier && tok.Text == "static" {
			if next := p.peekAt(1); !next.Is("(") && !next.Is("=") {
				p.next()
				member.Static = true
			}
		}
		memberStart := p.peek().Offset
		if member.Name, err = p.propertyName(); err != nil {
			return nil, err
		}
		if p.is("(") {
			fn, err := p.parseFunctionRest(&FunctionLiteral{Name: member.Name, Method: true}, memberStart)
			if err != nil {
				return nil, err
			}
			member.Function = fn
			if member.Name == "constructor" && !member.Static {
				if class.Constructor != nil {
					return nil, NewError(SyntaxError, "A class may only have one constructor")
				}
				class.Constructor = fn
				continue
			}
			class.Members = append(class.Members, member)
			continue
		}
		member.Field = true
		if p.accept("=") {
			if member.Value, err = p.parseAssignment(); err != nil {
				return nil, err
			}
		}
		if err = p.consumeSemicolon(); err != nil {
			return nil, err
		}
		class.Members = append(class.Members, member)
	}
	class.Source = p.source[start:p.lastEnd]
	return class, nil
}

func (p *parser) parseConditional() (Expression, error) {
	test, err := p.parseBinary(0)
	if err != nil || !p.accept("?") {
		return test, err
	}
	noIn := p.noIn
	p.noIn = false
	consequent, err := p.parseAssignment()
	p.noIn = noIn
	if err != nil {
		return nil, err
	}
	if err = p.expect(":"); err != nil {
		return nil, err
	}
	alternate, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

var binaryPrecedence = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
}

func (p *parser) binaryOperator() (string, int) {
	tok := p.peek()
	if tok.Kind != Punctuator && tok.Kind != Keyword {
		return "", 0
	}
	if tok.Text == "in" && p.noIn {
		return "", 0
	}
	precedence, ok := binaryPrecedence[tok.Text]
	if !ok {
		return "", 0
	}
	return tok.Text, precedence
}

func (p *parser) parseBinary(minPrecedence int) (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, precedence := p.binaryOperator()
		if precedence == 0 || precedence <= minPrecedence {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(precedence)
		if err != nil {
			return nil, err
		}
		switch op {
		case "&&", "||", "??":
			left = &LogicalExpression{Op: op, Left: left, Right: right}
		default:
			left = &BinaryExpression{Op: op, Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() (Expression, error) {
	tok := p.peek()
	switch {
	case tok.Is("!"), tok.Is("-"), tok.Is("+"), tok.Is("~"), tok.Is("typeof"), tok.Is("void"), tok.Is("delete"):
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Op: tok.Text, Operand: operand}, nil
	case tok.Is("++"), tok.Is("--"):
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if !isSimpleTarget(operand) {
			return nil, NewError(SyntaxError, "Invalid left-hand side expression in prefix operation")
		}
		return &UpdateExpression{Op: tok.Text, Prefix: true, Target: operand}, nil
	}
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.accept("**") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Op: "**", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePostfix() (Expression, error) {
	expr, err := p.parseCallMember()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); (tok.Is("++") || tok.Is("--")) && !tok.NewlineBefore {
		if !isSimpleTarget(expr) {
			return nil, NewError(SyntaxError, "Invalid left-hand side expression in postfix operation")
		}
		p.next()
		return &UpdateExpression{Op: tok.Text, Target: expr}, nil
	}
	return expr, nil
}

func (p *parser) parseCallMember() (Expression, error) {
	var expr Expression
	var err error
	if p.is("new") {
		expr, err = p.parseNew()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	optional := false
	for {
		switch {
		case p.accept("."):
			name, err := p.propertyName()
			if err != nil {
				return nil, err
			}
			expr = &MemberExpression{Object: expr, Property: name}
		case p.accept("?."):
			optional = true
			switch {
			case p.is("("):
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				expr = &CallExpression{Callee: expr, Args: args, Optional: true}
			case p.accept("["):
				property, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if err = p.expect("]"); err != nil {
					return nil, err
				}
				expr = &MemberExpression{Object: expr, Computed: property, Optional: true}
			default:
				name, err := p.propertyName()
				if err != nil {
					return nil, err
				}
				expr = &MemberExpression{Object: expr, Property: name, Optional: true}
			}
		case p.accept("["):
			property, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err = p.expect("]"); err != nil {
				return nil, err
			}
			expr = &MemberExpression{Object: expr, Computed: property}
		case p.is("("):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpression{Callee: expr, Args: args}
		default:
			if optional {
				return &OptionalChain{Expression: expr}, nil
			}
			return expr, nil
		}
	}
}

func (p *parser) parseNew() (Expression, error) {
	p.next()
	var callee Expression
	var err error
	if p.is("new") {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		if p.accept(".") {
			name, err := p.propertyName()
			if err != nil {
				return nil, err
			}
			callee = &MemberExpression{Object: callee, Property: name}
			continue
		}
		if p.accept("[") {
			property, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err = p.expect("]"); err != nil {
				return nil, err
			}
			callee = &MemberExpression{Object: callee, Computed: property}
			continue
		}
		break
	}
	expr := &NewExpression{Callee: callee}
	if p.is("(") {
		if expr.Args, err = p.parseArguments(); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *parser) parseArguments() ([]Expression, error) {
	p.next()
	noIn := p.noIn
	p.noIn = false
	defer func() { p.noIn = noIn }()
	var args []Expression
	for !p.is(")") {
		var arg Expression
		var err error
		if p.accept("...") {
			if arg, err = p.parseAssignment(); err != nil {
				return nil, err
			}
			arg = &SpreadElement{Argument: arg}
		} else if arg, err = p.parseAssignment(); err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.is(")") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return args, nil
}

func (p *parser) parsePrimary() (Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case Number:
		p.next()
		value, err := parseNumber(tok.Text)
		if err != nil {
			return nil, err
		}
		return &NumberLiteral{Value: value}, nil
	case String:
		p.next()
		value, err := unquote(tok.Text[1 : len(tok.Text)-1])
		if err != nil {
			return nil, err
		}
		return &StringLiteral{Value: value}, nil
	case Template:
		p.next()
		return parseTemplate(tok.Text)
	case Identifier:
		p.next()
		return &Ident{Name: tok.Text}, nil
	case Keyword:
		switch tok.Text {
		case "true", "false":
			p.next()
			return &BooleanLiteral{Value: tok.Text == "true"}, nil
		case "null":
			p.next()
			return &NullLiteral{}, nil
		case "this":
			p.next()
			return &ThisExpression{}, nil
		case "function":
			return p.parseFunction()
		case "class":
			return p.parseClass()
		case "super":
			p.next()
			if p.is("(") {
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				return &SuperCall{Args: args}, nil
			}
			if p.accept(".") {
				name, err := p.propertyName()
				if err != nil {
					return nil, err
				}
				return &SuperMember{Property: name}, nil
			}
			return nil, NewError(SyntaxError, "'super' keyword unexpected here")
		}
	case Punctuator:
		switch tok.Text {
		case "(":
			p.next()
			noIn := p.noIn
			p.noIn = false
			expr, err := p.parseExpression()
			p.noIn = noIn
			if err != nil {
				return nil, err
			}
			return expr, p.expect(")")
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		}
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseArrayLiteral() (Expression, error) {
	p.next()
	array := &ArrayLiteral{}
	for !p.is("]") {
		if p.accept(",") {
			array.Elements = append(array.Elements, nil)
			continue
		}
		var element Expression
		var err error
		if p.accept("...") {
			if element, err = p.parseAssignment(); err != nil {
				return nil, err
			}
			element = &SpreadElement{Argument: element}
		} else if element, err = p.parseAssignment(); err != nil {
			return nil, err
		}
		array.Elements = append(array.Elements, element)
		if !p.is("]") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return array, nil
}

func (p *parser) parseObjectLiteral() (Expression, error) {
	p.next()
	object := &ObjectLiteral{}
	for !p.is("}") {
		property := &Property{}
		var err error
		if p.accept("...") {
			if property.Value, err = p.parseAssignment(); err != nil {
				return nil, err
			}
			property.Spread = true
		} else {
			start := p.peek().Offset
			shorthand := p.peek().Kind == Identifier
			if p.accept("[") {
				shorthand = false
				if property.Computed, err = p.parseAssignment(); err != nil {
					return nil, err
				}
				if err = p.expect("]"); err != nil {
					return nil, err
				}
			} else if property.Key, err = p.propertyName(); err != nil {
				return nil, err
			}
			switch {
			case p.accept(":"):
				if property.Value, err = p.parseAssignment(); err != nil {
					return nil, err
				}
			case p.is("("):
				fn, err := p.parseFunctionRest(&FunctionLiteral{Name: property.Key, Method: true}, start)
				if err != nil {
					return nil, err
				}
				property.Value = fn
			case shorthand:
				property.Value = &Ident{Name: property.Key}
				if p.accept("=") {
					value, err := p.parseAssignment()
					if err != nil {
						return nil, err
					}
					property.Value = &AssignmentExpression{Op: "=", Target: property.Value, Value: value}
				}
			default:
				return nil, p.unexpected(p.peek())
			}
		}
		object.Properties = append(object.Properties, property)
		if !p.is("}") {
			if err = p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return object, nil
}

// parseTemplate splits a raw template token into cooked text and parsed substitutions
func parseTemplate(raw string) (Expression, error) {
	input := []byte(raw)
	size := len(input) - 1
	literal := &TemplateLiteral{}
	var text strings.Builder
	for i := 1; i < size; i++ {
		c := input[i]
		if c == '\\' && i+1 < size {
			text.WriteByte(c)
			text.WriteByte(input[i+1])
			i++
			continue
		}
		if c == '$' && i+1 < size && input[i+1] == '{' {
			end := scanSubstitution(input, i+2, len(input))
			if end < 0 {
				return nil, NewError(SyntaxError, "Unterminated template literal")
			}
			cooked, err := unquote(text.String())
			if err != nil {
				return nil, err
			}
			literal.Quasis = append(literal.Quasis, cooked)
			text.Reset()
			expr, err := ParseExpression(string(input[i+2 : end-1]))
			if err != nil {
				return nil, err
			}
			literal.Expressions = append(literal.Expressions, expr)
			i = end - 1
			continue
		}
		text.WriteByte(c)
	}
	cooked, err := unquote(text.String())
	if err != nil {
		return nil, err
	}
	literal.Quasis = append(literal.Quasis, cooked)
	return literal, nil
}

func parseNumber(text string) (float64, error) {
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch text[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			value, err := strconv.ParseUint(text[2:], base, 64)
			if err != nil {
				return 0, NewError(SyntaxError, "Invalid or unexpected token")
			}
			return float64(value), nil
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return value, nil
		}
		return 0, NewError(SyntaxError, "Invalid or unexpected token")
	}
	return value, nil
}

// unquote resolves escape sequences of a string or template body
func unquote(body string) (string, error) {
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			out.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'v':
			out.WriteByte('\v')
		case '0':
			out.WriteByte(0)
		case '\n':
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", NewError(SyntaxError, "Invalid hexadecimal escape sequence")
			}
			code, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", NewError(SyntaxError, "Invalid hexadecimal escape sequence")
			}
			out.WriteRune(rune(code))
			i += 2
		case 'u':
			var digits string
			if i+1 < len(body) && body[i+1] == '{' {
				end := strings.IndexByte(body[i:], '}')
				if end < 0 {
					return "", NewError(SyntaxError, "Invalid Unicode escape sequence")
				}
				digits = body[i+2 : i+end]
				i += end
			} else {
				if i+4 >= len(body) {
					return "", NewError(SyntaxError, "Invalid Unicode escape sequence")
				}
				digits = body[i+1 : i+5]
				i += 4
			}
			code, err := strconv.ParseUint(digits, 16, 32)
			if err != nil {
				return "", NewError(SyntaxError, "Invalid Unicode escape sequence")
			}
			out.WriteRune(rune(code))
		default:
			out.WriteByte(e)
		}
	}
	return out.String(), nil
}
