package program

import (
	"fmt"
	"strings"

	"github.com/gnoverse/revflow/decl"
)

// StmtKind discriminates the statements of the body script.
type StmtKind int

const (
	StmtPlain StmtKind = iota
	StmtCall
	StmtInvoke
	StmtPlaceholder
	StmtRequire
	StmtRevert
	StmtReturn
)

// Statement is one resolved body statement. Callee is set for StmtCall,
// Modifier for StmtInvoke.
type Statement struct {
	Kind     StmtKind
	Text     string
	Callee   *Function
	Modifier *Modifier
	Lookup   decl.LookupKind
}

// rawStatement is the parsed form of one body line before callee names are
// resolved against the program.
type rawStatement struct {
	kind   StmtKind
	callee string
	lookup decl.LookupKind
	text   string
}

// parseStatement reads one line of the body script:
//
//	revert | return | require | placeholder | _
//	call NAME [static] | invoke NAME [static]
//	anything else        -- a plain statement
//
// NAME may be qualified as Contract.name; qualified references bind
// statically (library-style calls) unless the suffix says otherwise.
func parseStatement(line string) (rawStatement, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return rawStatement{}, fmt.Errorf("empty statement")
	}

	switch fields[0] {
	case "revert":
		return rawStatement{kind: StmtRevert, text: line}, nil
	case "return":
		return rawStatement{kind: StmtReturn, text: line}, nil
	case "require":
		return rawStatement{kind: StmtRequire, text: line}, nil
	case "placeholder", "_":
		return rawStatement{kind: StmtPlaceholder, text: line}, nil
	case "call", "invoke":
		if len(fields) < 2 {
			return rawStatement{}, fmt.Errorf("%s without a callee name", fields[0])
		}
		name := fields[1]
		lookup := decl.Virtual
		if strings.Contains(name, ".") {
			lookup = decl.Static
		}
		switch {
		case len(fields) == 2:
		case len(fields) == 3 && fields[2] == "static":
			lookup = decl.Static
		default:
			return rawStatement{}, fmt.Errorf("malformed statement %q", line)
		}
		kind := StmtCall
		if fields[0] == "invoke" {
			kind = StmtInvoke
		}
		return rawStatement{kind: kind, callee: name, lookup: lookup, text: line}, nil
	default:
		return rawStatement{kind: StmtPlain, text: line}, nil
	}
}

// resolve binds a raw statement's callee to its declaration. owner is the
// contract declaring the body, nil for free functions.
func (p *Program) resolve(owner *Contract, raw rawStatement) (Statement, error) {
	stmt := Statement{Kind: raw.kind, Text: raw.text, Lookup: raw.lookup}
	if raw.kind != StmtCall && raw.kind != StmtInvoke {
		return stmt, nil
	}

	contractName, name := splitQualified(raw.callee)
	scope := owner
	if contractName != "" {
		scope = p.Contract(contractName)
		if scope == nil {
			return Statement{}, fmt.Errorf("unknown contract %q in %q", contractName, raw.text)
		}
	}

	if raw.kind == StmtInvoke {
		mod := lookupModifier(scope, name)
		if mod == nil {
			return Statement{}, fmt.Errorf("unknown modifier %q in %q", raw.callee, raw.text)
		}
		stmt.Modifier = mod
		return stmt, nil
	}

	if fn := lookupFunction(scope, name); fn != nil {
		stmt.Callee = fn
		return stmt, nil
	}
	if contractName == "" {
		if fn := p.FreeFunction(name); fn != nil {
			stmt.Callee = fn
			return stmt, nil
		}
	}
	return Statement{}, fmt.Errorf("unknown function %q in %q", raw.callee, raw.text)
}

// lookupFunction finds the declaration a body reference names: the first
// match along the declaring contract's linearization.
func lookupFunction(scope *Contract, name string) *Function {
	if scope == nil {
		return nil
	}
	for _, base := range scope.Linearized() {
		if fn := base.(*Contract).Function(name); fn != nil {
			return fn
		}
	}
	return nil
}

func lookupModifier(scope *Contract, name string) *Modifier {
	if scope == nil {
		return nil
	}
	for _, base := range scope.Linearized() {
		if mod := base.(*Contract).Modifier(name); mod != nil {
			return mod
		}
	}
	return nil
}

func splitQualified(name string) (contract, member string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
