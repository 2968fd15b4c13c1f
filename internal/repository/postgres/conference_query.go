package postgres

import (
	"fmt"
	"strings"

	"conferencecentral/internal/domain"
)

var conferenceColumnByField = map[domain.ConferenceField]string{
	domain.FieldCity:         "city",
	domain.FieldTopic:        "topics",
	domain.FieldMonth:        "month",
	domain.FieldMaxAttendees: "max_attendees",
	domain.FieldName:         "name",
}

// flipped gives op with its operands swapped, for "$n op ANY(array)" forms.
var flipped = map[domain.FilterOperator]domain.FilterOperator{
	domain.OpEQ:  domain.OpEQ,
	domain.OpNE:  domain.OpNE,
	domain.OpGT:  domain.OpLT,
	domain.OpGTE: domain.OpLTE,
	domain.OpLT:  domain.OpGT,
	domain.OpLTE: domain.OpGTE,
}

// renderConditions turns compiled conditions into an AND-joined WHERE clause.
// Column names and operators come only from closed tables; values are always
// bind parameters.
func renderConditions(conds []domain.Condition) (string, []any, error) {
	clauses := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		col, ok := conferenceColumnByField[c.Field]
		if !ok || c.Field == domain.FieldName {
			return "", nil, domain.ErrInvalidFilter
		}
		op := c.Operator.Symbol()
		if op == "?" {
			return "", nil, domain.ErrInvalidFilter
		}
		args = append(args, c.Value)
		if c.Field == domain.FieldTopic {
			clauses = append(clauses, fmt.Sprintf("$%d %s ANY(%s)", len(args), flipped[c.Operator].Symbol(), col))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}
	return strings.Join(clauses, " AND "), args, nil
}

func renderOrder(fields []domain.ConferenceField) (string, error) {
	if len(fields) == 0 {
		return "name", nil
	}
	cols := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		col, ok := conferenceColumnByField[f]
		if !ok {
			return "", domain.ErrInvalidFilter
		}
		cols = append(cols, col)
	}
	// id keeps pages stable when names repeat
	cols = append(cols, "id")
	return strings.Join(cols, ", "), nil
}
