package program

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileProgram struct {
	Free      []fileCallable `yaml:"free"`
	Contracts []fileContract `yaml:"contracts"`
}

type fileContract struct {
	Name      string         `yaml:"name"`
	Bases     []string       `yaml:"bases"`
	Functions []fileCallable `yaml:"functions"`
	Modifiers []fileCallable `yaml:"modifiers"`
}

type fileCallable struct {
	Name     string   `yaml:"name"`
	Abstract bool     `yaml:"abstract"`
	Body     []string `yaml:"body"`
}

// Load parses a YAML program description. Bases must be declared before
// the contracts deriving from them.
func Load(data []byte) (*Program, error) {
	var file fileProgram
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing program: %w", err)
	}
	return assemble(&file)
}

// LoadFile reads and parses a program description file.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program %s: %w", path, err)
	}
	prog, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// assemble builds the declaration graph in two phases: first every
// contract, function and modifier skeleton, then the bodies, so that body
// references can name any declaration of the program.
func assemble(file *fileProgram) (*Program, error) {
	prog := &Program{}

	for _, fc := range file.Contracts {
		if prog.Contract(fc.Name) != nil {
			return nil, fmt.Errorf("duplicate contract %q", fc.Name)
		}
		contract := &Contract{name: fc.Name}
		for _, baseName := range fc.Bases {
			base := prog.Contract(baseName)
			if base == nil {
				return nil, fmt.Errorf("contract %q: unknown base %q", fc.Name, baseName)
			}
			contract.bases = append(contract.bases, base)
		}
		for _, ff := range fc.Functions {
			contract.functions = append(contract.functions, &Function{
				name:     ff.Name,
				contract: contract,
				abstract: ff.Abstract,
			})
		}
		for _, fm := range fc.Modifiers {
			contract.modifiers = append(contract.modifiers, &Modifier{
				name:     fm.Name,
				contract: contract,
				abstract: fm.Abstract,
			})
		}
		prog.contracts = append(prog.contracts, contract)
	}

	for _, ff := range file.Free {
		prog.free = append(prog.free, &Function{name: ff.Name, abstract: ff.Abstract})
	}

	for i, fc := range file.Contracts {
		contract := prog.contracts[i]
		for j, ff := range fc.Functions {
			body, err := prog.parseBody(contract, ff)
			if err != nil {
				return nil, fmt.Errorf("contract %q function %q: %w", fc.Name, ff.Name, err)
			}
			contract.functions[j].body = body
		}
		for j, fm := range fc.Modifiers {
			body, err := prog.parseBody(contract, fm)
			if err != nil {
				return nil, fmt.Errorf("contract %q modifier %q: %w", fc.Name, fm.Name, err)
			}
			contract.modifiers[j].body = body
		}
	}
	for i, ff := range file.Free {
		body, err := prog.parseBody(nil, ff)
		if err != nil {
			return nil, fmt.Errorf("free function %q: %w", ff.Name, err)
		}
		prog.free[i].body = body
	}

	return prog, nil
}

func (p *Program) parseBody(owner *Contract, fc fileCallable) ([]Statement, error) {
	if fc.Abstract {
		if len(fc.Body) > 0 {
			return nil, fmt.Errorf("abstract declaration with a body")
		}
		return nil, nil
	}
	body := make([]Statement, 0, len(fc.Body))
	for _, line := range fc.Body {
		raw, err := parseStatement(line)
		if err != nil {
			return nil, err
		}
		stmt, err := p.resolve(owner, raw)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
