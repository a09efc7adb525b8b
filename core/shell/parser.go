package shell

import (
	"errors"
	"strings"
)

/**
The grammar is intentionally small:

	line       := statement (';' statement)*
	statement  := command ('&&' command)*
	command    := whitespace separated tokens; token[0] is the binary

There is no quoting, escaping, grouping or expansion. A line is first split
into statements on ';', then each statement is split into commands on '&&',
so '&&' binds tighter than ';' like it does in sh.
**/

const (
	tokenSequence = ";"
	tokenAndThen  = "&&"
)

// ErrEmptyLine is returned when a command has no binary token.
var ErrEmptyLine = errors.New("empty line")

// Parse converts a line of input into an expression tree.
func Parse(line string) (Expression, error) {
	var statements []Expression
	for _, stmtText := range strings.Split(line, tokenSequence) {
		stmt, err := parseStatement(stmtText)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return foldRight(Sequence, statements), nil
}

func parseStatement(text string) (Expression, error) {
	var commands []Expression
	for _, cmdText := range strings.Split(text, tokenAndThen) {
		cmd, err := ParseCommand(cmdText)
		if err != nil {
			return nil, err
		}
		commands = append(commands, &Leaf{Command: cmd})
	}

	return foldRight(AndThen, commands), nil
}

// ParseCommand extracts a single command and its arguments from text.
func ParseCommand(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}

	binary, args := fields[0], fields[1:]
	if builtin, ok := AllBuiltins[binary]; ok {
		return &Builtin{Name: binary, Action: builtin(args)}, nil
	}

	return &Invoke{Binary: binary, Args: args}, nil
}

// foldRight joins exprs with op so the last expression is the deepest right
// child. exprs must not be empty.
func foldRight(op Operator, exprs []Expression) Expression {
	out := exprs[len(exprs)-1]
	for i := len(exprs) - 2; i >= 0; i-- {
		out = &Compound{Op: op, Left: exprs[i], Right: out}
	}
	return out
}
