package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guidedawg/app/service/grounding"
	"guidedawg/app/service/resolver"

	"github.com/samber/do"
)

// Service runs one conversation turn: resolve the utterance to a date or
// range, build the dataset context, assemble the prompt, call the model, and
// record the turn in the session state.
type Service struct {
	builder   *grounding.Builder
	generator Generator

	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		builder:   do.MustInvoke[*grounding.Builder](di),
		generator: do.MustInvoke[Generator](di),
		now:       time.Now,
	}, nil
}

// ProcessTurn resolves and answers a single utterance against state. On
// success it appends the user and assistant messages and overwrites
// LastTargetDate with the turn's resolved target date; greeting turns update
// it to today like any other turn. A failed model call leaves state untouched.
func (s *Service) ProcessTurn(ctx context.Context, state *State, text string) (string, error) {
	today := resolver.Day(s.now())

	query := resolver.Resolve(text, today, state.LastTargetDate)

	slog.Debug("Resolved utterance",
		"target_date", query.TargetDate.Format("2006-01-02"),
		"target_end_date", query.TargetEndDate.Format("2006-01-02"),
		"category", query.Category,
	)

	datasetContext := s.builder.Build(query)
	prompt := assemblePrompt(today, query, datasetContext, state.historyBlock(), text)

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generator.Generate: %w", err)
	}

	state.append(RoleUser, text)
	state.append(RoleAssistant, reply)

	target := query.TargetDate
	state.LastTargetDate = &target

	return reply, nil
}
