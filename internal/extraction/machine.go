package extraction

import (
	"tradelens/pkg/contracts/domain"
)

// Phase is the tag of the machine state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInSection
	PhaseInSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseInSection:
		return "in_section"
	case PhaseInSummary:
		return "in_summary"
	default:
		return "idle"
	}
}

// State is the section machine state. Section and Headers are only
// meaningful in PhaseInSection.
type State struct {
	Phase   Phase
	Section domain.SectionName
	Headers []string
}

// View exposes the state to classifiers.
func (s State) View() View {
	return View{
		Phase:        s.Phase,
		Section:      s.Section,
		HeadersKnown: len(s.Headers) > 0,
	}
}

// EffectKind tells the accumulator what a transition produced
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectHeaders
	EffectRecord
	EffectSummary
)

// Effect is the output of one transition.
type Effect struct {
	Kind    EffectKind
	Section domain.SectionName
	Headers []string
	Record  domain.Record
	Pairs   []domain.Field
}

var idle = State{Phase: PhaseIdle}

// Advance is the transition function of the section machine. It never
// mutates its inputs.
func Advance(s State, row ClassifiedRow) (State, Effect) {
	none := Effect{Kind: EffectNone}

	switch s.Phase {
	case PhaseInSummary:
		if row.Role == RoleSummary {
			return s, Effect{Kind: EffectSummary, Section: domain.SectionSummary, Pairs: ParseSummaryPairs(row.Visible)}
		}
		return s, none

	case PhaseIdle:
		switch row.Role {
		case RoleSectionTitle:
			return enter(row.Section), none
		case RoleSummary:
			return State{Phase: PhaseInSummary}, Effect{Kind: EffectSummary, Section: domain.SectionSummary, Pairs: ParseSummaryPairs(row.Visible)}
		}
		return s, none

	case PhaseInSection:
		switch row.Role {
		case RoleSectionTitle:
			return enter(row.Section), none
		case RoleHeader:
			headers := append([]string(nil), row.Texts...)
			return State{Phase: PhaseInSection, Section: s.Section, Headers: headers},
				Effect{Kind: EffectHeaders, Section: s.Section, Headers: headers}
		case RoleData:
			return s, Effect{Kind: EffectRecord, Section: s.Section, Record: zipRecord(s.Headers, row.Cells)}
		case RoleTotals:
			return s, none
		case RoleSummary:
			return s, none
		default:
			return idle, none
		}
	}
	return s, none
}

// enter starts the named section. Unknown titles end the current section.
func enter(name domain.SectionName) State {
	switch {
	case name == domain.SectionSummary:
		return State{Phase: PhaseInSummary}
	case name.IsTabular():
		return State{Phase: PhaseInSection, Section: name}
	default:
		return idle
	}
}

// zipRecord pairs headers with cells by position; missing cells are empty and
// extra cells are dropped.
func zipRecord(headers []string, cells []domain.Cell) domain.Record {
	record := make(domain.Record, len(headers))
	for i, h := range headers {
		value := ""
		if i < len(cells) {
			value = cells[i].Text
		}
		record[i] = domain.Field{Name: h, Value: value}
	}
	return record
}

// Machine folds classified rows into a trade history. A Machine belongs to a
// single parse and must not be shared between goroutines.
type Machine struct {
	state  State
	result *domain.TradeHistory
}

// NewMachine returns a machine in the Idle state with an empty result.
func NewMachine() *Machine {
	return &Machine{state: idle, result: domain.NewTradeHistory()}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Step advances the machine by one classified row and applies the effect.
func (m *Machine) Step(row ClassifiedRow) {
	next, effect := Advance(m.state, row)
	m.state = next
	m.apply(effect)
}

func (m *Machine) apply(e Effect) {
	switch e.Kind {
	case EffectHeaders:
		if section := m.result.Section(e.Section); section != nil {
			section.Headers = e.Headers
		}
	case EffectRecord:
		if section := m.result.Section(e.Section); section != nil {
			section.Records = append(section.Records, e.Record)
		}
	case EffectSummary:
		for _, p := range e.Pairs {
			m.result.Summary[p.Name] = p.Value
		}
	}
}

// Result returns the accumulated trade history.
func (m *Machine) Result() *domain.TradeHistory {
	return m.result
}
