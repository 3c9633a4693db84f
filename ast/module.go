/*
File    : modlc/ast/module.go

Module is the top-level artifact the parser produces: one per source
file, holding the descriptive-block data pass 1 extracts and the ordered
symbol table both passes populate.
*/
package ast

import "modlc/diag"

// Module is the result of parsing one mechanism description file.
type Module struct {
	title   string
	neuron  NeuronInfo
	units   []UnitConversion

	// names, in first-declaration order, so iteration is deterministic
	// (§5: "symbol table insertion order is preserved for deterministic
	// iteration", not a requirement the teacher's map-only table had to
	// satisfy, since the teacher never iterated a whole symbol table).
	order   []string
	symbols map[string]*Symbol

	status   diag.Status
	firstErr *diag.Diagnostic
	warnings []diag.Diagnostic
}

// NewModule returns an empty Module ready for pass 1 to populate.
func NewModule() *Module {
	return &Module{symbols: make(map[string]*Symbol), status: diag.Happy}
}

func (m *Module) SetTitle(title string) { m.title = TrimTitleCR(title) }
func (m *Module) Title() string         { return m.title }

func (m *Module) SetNeuronInfo(n NeuronInfo) { m.neuron = n }
func (m *Module) NeuronInfo() NeuronInfo     { return m.neuron }

func (m *Module) AddUnit(u UnitConversion) { m.units = append(m.units, u) }
func (m *Module) Units() []UnitConversion  { return m.units }

// Declare inserts sym into the symbol table. It reports false, recording
// a diagnostic and leaving the existing entry untouched, if a symbol by
// that name is already declared (§3.3 duplicate-name invariant). The one
// exception is a USEION/NONSPECIFIC_CURRENT variable (VisIndexedIon) that
// is declared again in STATE, PARAMETER or ASSIGNED: the existing entry
// keeps its ion visibility, takes the new unit, default and range, and
// Declare reports true.
func (m *Module) Declare(sym *Symbol) bool {
	if existing, exists := m.symbols[sym.Name]; exists {
		if existing.IsVariable() && existing.Visibility == VisIndexedIon && sym.IsVariable() &&
			(sym.Visibility == VisState || sym.Visibility == VisParameter || sym.Visibility == VisAssigned) {
			existing.Unit = sym.Unit
			existing.Default, existing.HasDefault = sym.Default, sym.HasDefault
			existing.Lo, existing.Hi, existing.HasRange = sym.Lo, sym.Hi, sym.HasRange
			return true
		}
		m.fail("E-DUP-SYM", "duplicate symbol '"+sym.Name+"'", sym.Loc)
		return false
	}
	m.symbols[sym.Name] = sym
	m.order = append(m.order, sym.Name)
	return true
}

// Lookup returns the symbol named name, if declared.
func (m *Module) Lookup(name string) (*Symbol, bool) {
	s, ok := m.symbols[name]
	return s, ok
}

// Symbols returns every declared symbol in first-declaration order.
func (m *Module) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.symbols[name])
	}
	return out
}

// Variables returns the subset of Symbols with the given visibility, in
// declaration order; e.g. Variables(VisState) for the STATE block's
// contents.
func (m *Module) Variables(vis Visibility) []*Symbol {
	out := make([]*Symbol, 0)
	for _, name := range m.order {
		s := m.symbols[name]
		if s.IsVariable() && s.Visibility == vis {
			out = append(out, s)
		}
	}
	return out
}

// Procedures returns every procedural-block symbol, in declaration order.
func (m *Module) Procedures() []*Symbol {
	out := make([]*Symbol, 0)
	for _, name := range m.order {
		s := m.symbols[name]
		if s.IsProcedure() {
			out = append(out, s)
		}
	}
	return out
}

func (m *Module) fail(code, message string, loc diag.Location) {
	m.status = diag.Error
	if m.firstErr == nil {
		d := diag.New(code, message, loc)
		m.firstErr = &d
	}
}

// Fail records a parse-time diagnostic against the module, honoring the
// first-error-wins policy (§4.6/§7): only the first call sets FirstError,
// but Status flips to Error permanently.
func (m *Module) Fail(code, message string, loc diag.Location) {
	m.fail(code, message, loc)
}

// Warn records a non-fatal diagnostic that does not change Status — e.g.
// an unused LOCAL declaration. Supplemented beyond the base grammar
// (DESIGN.md): the original grammar has no concept of a warning, only of
// first-error-wins failure.
func (m *Module) Warn(code, message string, loc diag.Location) {
	m.warnings = append(m.warnings, diag.New(code, message, loc))
}

func (m *Module) Warnings() []diag.Diagnostic { return m.warnings }

// Status reports whether parsing this module ever recorded an error.
func (m *Module) Status() diag.Status { return m.status }

// FirstError returns the first diagnostic recorded for this module, if
// any. Per §4.6, parsing does not attempt recovery past this point, so a
// Module with Status() == diag.Error may be otherwise incompletely
// populated.
func (m *Module) FirstError() (diag.Diagnostic, bool) {
	if m.firstErr == nil {
		return diag.Diagnostic{}, false
	}
	return *m.firstErr, true
}

// TrimTitleCR drops a trailing carriage return from a TITLE block's text,
// the same trim as lexer.TrimCR, duplicated here to keep ast free of a
// lexer import for one helper.
func TrimTitleCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}
