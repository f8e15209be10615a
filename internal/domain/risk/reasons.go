package risk

// NoIndicatorsReason is returned when no scoring rule fired.
const NoIndicatorsReason = "No significant risk indicators detected"

// Reasons explains which rules contributed to e, in rule-table order.
// e must come from Evaluate(p); the list is never empty.
func Reasons(p AccountProfile, e Evaluation) []Reason {
	out := make([]Reason, 0, len(e.fired))
	for _, i := range e.fired {
		r := rules[i]
		out = append(out, Reason{Category: r.category, Text: r.describe(p)})
	}
	if len(out) == 0 {
		out = append(out, Reason{Category: CategoryNone, Text: NoIndicatorsReason})
	}
	return out
}
