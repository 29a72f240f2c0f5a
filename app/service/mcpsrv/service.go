package mcpsrv

import (
	"context"
	"fmt"

	"guidedawg/app/service/events"
	"guidedawg/app/service/grounding"
	"guidedawg/app/service/resolver"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// Service exposes the event table as MCP tools over stdio, so external agents
// can ground on the same dataset the chat assistant uses.
type Service struct {
	store   *events.Store
	builder *grounding.Builder
	srv     *server.MCPServer
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		store:   do.MustInvoke[*events.Store](di),
		builder: do.MustInvoke[*grounding.Builder](di),
	}

	srv := server.NewMCPServer("guidedawg-events", "1.0.0")

	srv.AddTool(mcp.NewTool("events_for_date",
		mcp.WithDescription("List all events on a single date, sorted by time. Dates use M/D/YYYY."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Target date, e.g. 3/15/2025")),
	), s.handleEventsForDate)

	srv.AddTool(mcp.NewTool("events_search",
		mcp.WithDescription("List events in an inclusive date range, grouped per day, optionally filtered by category. Dates use M/D/YYYY."),
		mcp.WithString("start", mcp.Required(), mcp.Description("Range start date")),
		mcp.WithString("end", mcp.Description("Range end date, defaults to start")),
		mcp.WithString("category", mcp.Description("Category filter, e.g. Music or Comedy")),
	), s.handleEventsSearch)

	srv.AddTool(mcp.NewTool("events_for_location",
		mcp.WithDescription("List all events at a location, across all dates."),
		mcp.WithString("location", mcp.Required(), mcp.Description("Venue name, e.g. The Foundry")),
	), s.handleEventsForLocation)

	s.srv = srv

	return s, nil
}

func (s *Service) Run(_ context.Context) error {
	if err := server.ServeStdio(s.srv); err != nil {
		return fmt.Errorf("mcp serve stdio: %w", err)
	}

	return nil
}

func (s *Service) handleEventsForDate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date, err := events.ParseDate(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := s.builder.Build(resolver.Query{TargetDate: date, TargetEndDate: date})

	return mcp.NewToolResultText(text), nil
}

func (s *Service) handleEventsSearch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawStart, err := request.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := events.ParseDate(rawStart)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	end := start
	if rawEnd := request.GetString("end", ""); rawEnd != "" {
		if end, err = events.ParseDate(rawEnd); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if end.Before(start) {
		return mcp.NewToolResultError("end date is before start date"), nil
	}

	category := request.GetString("category", "")
	if category != "" && !s.store.HasCategory(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", category)), nil
	}

	text := s.builder.Build(resolver.Query{
		TargetDate:    start,
		TargetEndDate: end,
		Category:      category,
	})

	return mcp.NewToolResultText(text), nil
}

func (s *Service) handleEventsForLocation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := request.RequireString("location")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matched := s.store.FindByLocation(location)
	if len(matched) == 0 {
		return mcp.NewToolResultText("No events found for this location."), nil
	}

	return mcp.NewToolResultText(grounding.FormatRecords(matched)), nil
}
