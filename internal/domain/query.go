package domain

// ConferenceField is a conference property that may appear in a query filter.
type ConferenceField int

const (
	FieldUnknown ConferenceField = iota
	FieldCity
	FieldTopic
	FieldMonth
	FieldMaxAttendees
	// FieldName is only used for ordering.
	FieldName
)

func (f ConferenceField) String() string {
	switch f {
	case FieldCity:
		return "city"
	case FieldTopic:
		return "topics"
	case FieldMonth:
		return "month"
	case FieldMaxAttendees:
		return "maxAttendees"
	case FieldName:
		return "name"
	}
	return "unknown"
}

// Numeric reports whether filter values for f are integers.
func (f ConferenceField) Numeric() bool {
	return f == FieldMonth || f == FieldMaxAttendees
}

// FilterOperator is a comparison operator in a query filter.
type FilterOperator int

const (
	OpUnknown FilterOperator = iota
	OpEQ
	OpGT
	OpGTE
	OpLT
	OpLTE
	OpNE
)

// Symbol returns the comparison symbol of op.
func (op FilterOperator) Symbol() string {
	switch op {
	case OpEQ:
		return "="
	case OpGT:
		return ">"
	case OpGTE:
		return ">="
	case OpLT:
		return "<"
	case OpLTE:
		return "<="
	case OpNE:
		return "!="
	}
	return "?"
}

// Inequality reports whether op is anything other than equality.
func (op FilterOperator) Inequality() bool {
	return op != OpEQ
}

// FilterSpec is one user-supplied (field, operator, value) triple.
type FilterSpec struct {
	Field    ConferenceField
	Operator FilterOperator
	Value    string
}

// Condition is a validated filter whose value has been coerced to its field's type
// (string or int).
type Condition struct {
	Field    ConferenceField
	Operator FilterOperator
	Value    any
}

// QueryPlan is the compiled form of a filter list, ready to run against the store.
type QueryPlan struct {
	Conditions []Condition
	// InequalityField is FieldUnknown when every condition is an equality.
	InequalityField ConferenceField
	OrderBy         []ConferenceField
	Page            *PaginationParams
}
