// Package filters turns user-supplied conference filters into a validated
// domain.QueryPlan.
package filters

import (
	"fmt"
	"strconv"
	"strings"

	"conferencecentral/internal/domain"
)

// Filter is one filter as received on the wire.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

var fieldNames = map[string]domain.ConferenceField{
	"CITY":          domain.FieldCity,
	"TOPIC":         domain.FieldTopic,
	"MONTH":         domain.FieldMonth,
	"MAX_ATTENDEES": domain.FieldMaxAttendees,
	"MAXATTENDEES":  domain.FieldMaxAttendees,
}

var operatorNames = map[string]domain.FilterOperator{
	"EQ":   domain.OpEQ,
	"GT":   domain.OpGT,
	"GTEQ": domain.OpGTE,
	"LT":   domain.OpLT,
	"LTEQ": domain.OpLTE,
	"NE":   domain.OpNE,
	"=":    domain.OpEQ,
	">":    domain.OpGT,
	">=":   domain.OpGTE,
	"<":    domain.OpLT,
	"<=":   domain.OpLTE,
	"!=":   domain.OpNE,
}

// ParseField maps a wire field name (CITY, city, maxAttendees, ...) to its field.
func ParseField(s string) (domain.ConferenceField, error) {
	f, ok := fieldNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return domain.FieldUnknown, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidFilter, s)
	}
	return f, nil
}

// ParseOperator maps a wire operator (EQ or =, GTEQ or >=, ...) to its operator.
func ParseOperator(s string) (domain.FilterOperator, error) {
	op, ok := operatorNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return domain.OpUnknown, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidFilter, s)
	}
	return op, nil
}

// Parse resolves the field and operator names of raw against the closed tables.
func Parse(raw []Filter) ([]domain.FilterSpec, error) {
	specs := make([]domain.FilterSpec, 0, len(raw))
	for _, r := range raw {
		field, err := ParseField(r.Field)
		if err != nil {
			return nil, err
		}
		op, err := ParseOperator(r.Operator)
		if err != nil {
			return nil, err
		}
		specs = append(specs, domain.FilterSpec{Field: field, Operator: op, Value: r.Value})
	}
	return specs, nil
}

// Compile validates specs and builds the query plan. Conditions keep input
// order. The first field used with a non-equality operator becomes the
// inequality field; a different field using one later is rejected. Results
// are ordered by the inequality field (if any) and then by name.
func Compile(specs []domain.FilterSpec) (*domain.QueryPlan, error) {
	plan := &domain.QueryPlan{Conditions: make([]domain.Condition, 0, len(specs))}
	for _, s := range specs {
		if !knownField(s.Field) || !knownOperator(s.Operator) {
			return nil, domain.ErrInvalidFilter
		}
		if s.Operator.Inequality() {
			if plan.InequalityField != domain.FieldUnknown && plan.InequalityField != s.Field {
				return nil, fmt.Errorf("%w: %s and %s", domain.ErrMultipleInequalityFields, plan.InequalityField, s.Field)
			}
			plan.InequalityField = s.Field
		}
		var value any = s.Value
		if s.Field.Numeric() {
			n, err := strconv.Atoi(strings.TrimSpace(s.Value))
			if err != nil {
				return nil, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidFilter, s.Field, s.Value)
			}
			value = n
		}
		plan.Conditions = append(plan.Conditions, domain.Condition{Field: s.Field, Operator: s.Operator, Value: value})
	}
	if plan.InequalityField != domain.FieldUnknown {
		plan.OrderBy = []domain.ConferenceField{plan.InequalityField, domain.FieldName}
	} else {
		plan.OrderBy = []domain.ConferenceField{domain.FieldName}
	}
	return plan, nil
}

func knownField(f domain.ConferenceField) bool {
	switch f {
	case domain.FieldCity, domain.FieldTopic, domain.FieldMonth, domain.FieldMaxAttendees:
		return true
	}
	return false
}

func knownOperator(op domain.FilterOperator) bool {
	return op >= domain.OpEQ && op <= domain.OpNE
}
