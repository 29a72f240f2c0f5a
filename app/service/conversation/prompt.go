package conversation

import (
	"fmt"
	"strings"
	"time"

	"guidedawg/app/service/grounding"
	"guidedawg/app/service/resolver"

	_ "embed"
)

//go:embed prompt_template.txt
var promptTemplate string

func assemblePrompt(today time.Time, query resolver.Query, datasetContext, history, userMessage string) string {
	templateValues := map[string]any{
		"today":           grounding.FormatDate(today),
		"date_context":    dateContext(query),
		"dataset_context": datasetContext,
		"history":         history,
		"user_message":    userMessage,
	}

	prompt := promptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return prompt
}

// dateContext frames the resolved period the way the question asked it, so
// the model answers about "next week" or "the weekend" rather than bare dates.
func dateContext(query resolver.Query) string {
	switch query.Kind {
	case resolver.KindNextWeek:
		return fmt.Sprintf("for next week (Monday: %s to Sunday: %s)",
			grounding.FormatDate(query.TargetDate), grounding.FormatDate(query.TargetEndDate))
	case resolver.KindWeekend:
		return fmt.Sprintf("for the weekend (Saturday: %s, Sunday: %s)",
			grounding.FormatDate(query.TargetDate), grounding.FormatDate(query.TargetEndDate))
	default:
		return "for " + grounding.FormatDate(query.TargetDate)
	}
}
