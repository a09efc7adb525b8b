package shell

import (
	"fmt"
	"strings"
)

// Operator joins two expressions.
type Operator int

const (
	// Sequence runs the left side, then the right side regardless of the
	// left side's result.
	Sequence Operator = iota
	// AndThen runs the right side only if the left side succeeded.
	AndThen
)

func (o Operator) String() string {
	switch o {
	case Sequence:
		return tokenSequence
	case AndThen:
		return tokenAndThen
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Expression is a node in a parsed line, either a *Leaf or a *Compound.
type Expression interface {
	fmt.Stringer
	isExpression()
}

// Leaf holds a single command.
type Leaf struct {
	Command Command
}

func (*Leaf) isExpression() {}

func (l *Leaf) String() string {
	return l.Command.String()
}

// Compound combines two expressions with an operator, left to right.
type Compound struct {
	Op    Operator
	Left  Expression
	Right Expression
}

func (*Compound) isExpression() {}

func (c *Compound) String() string {
	if c.Op == Sequence {
		return fmt.Sprintf("%s%s %s", c.Left, c.Op, c.Right)
	}
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// Command is a single executable unit, either an *Invoke or a *Builtin.
type Command interface {
	fmt.Stringer
	// Argv returns the command's name followed by its arguments.
	Argv() []string
	isCommand()
}

// Invoke runs an external binary.
type Invoke struct {
	Binary string
	Args   []string
}

func (*Invoke) isCommand() {}

func (i *Invoke) Argv() []string {
	return append([]string{i.Binary}, i.Args...)
}

func (i *Invoke) String() string {
	return strings.Join(i.Argv(), " ")
}

// Builtin is handled by the interpreter itself and never spawned.
type Builtin struct {
	Name   string
	Action Action
}

func (*Builtin) isCommand() {}

func (b *Builtin) Argv() []string {
	return []string{b.Name}
}

func (b *Builtin) String() string {
	return b.Name
}

// Action is the effect of a builtin.
type Action interface {
	isAction()
}

// Exit terminates the interpreter with Code.
type Exit struct {
	Code int
}

func (Exit) isAction() {}

// Leaves returns the commands of expr from left to right.
func Leaves(expr Expression) []Command {
	switch expr := expr.(type) {
	case *Leaf:
		return []Command{expr.Command}
	case *Compound:
		return append(Leaves(expr.Left), Leaves(expr.Right)...)
	default:
		return nil
	}
}
