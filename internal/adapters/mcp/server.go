// Package mcp exposes the squad analytics as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/pitchside/internal/adapters/report"
	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// Tool names.
const (
	ToolPositionProfiles = "position_profiles"
	ToolProgressTrends   = "progress_trends"
	ToolWorkload         = "workload"
	ToolMatchTop         = "match_top"
	ToolPlayerReport     = "player_report"
	ToolFindPlayer       = "find_player"
)

var codec = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze() //nolint:gochecknoglobals // frozen config

// Dependencies are the analytics the tools read. *service.Service implements it.
type Dependencies interface {
	Profiles(ctx context.Context) ([]analytics.ProfileRow, error)
	Progress(ctx context.Context, today model.Date) (analytics.Progress, error)
	Workload(ctx context.Context, sortBy string) (analytics.Workloads, error)
	MatchTop(ctx context.Context, matchID int) ([]analytics.MatchRanking, error)
	Report(ctx context.Context, playerID int) (analytics.Report, error)
	SearchPlayers(ctx context.Context, query string) ([]analytics.PlayerHit, error)
}

// Tool arguments.
type (
	ProfilesArgs struct{}

	ProgressArgs struct {
		Today string `json:"today,omitempty" jsonschema:"reference date YYYY-MM-DD, defaults to the current date"`
	}

	WorkloadArgs struct {
		Sort string `json:"sort,omitempty" jsonschema:"ordering: name (default) or minutes"`
	}

	MatchTopArgs struct {
		MatchID int `json:"match_id" jsonschema:"match id"`
	}

	PlayerReportArgs struct {
		PlayerID int    `json:"player_id" jsonschema:"player id"`
		Format   string `json:"format,omitempty" jsonschema:"json (default) or markdown"`
	}

	FindPlayerArgs struct {
		Name string `json:"name" jsonschema:"full or partial player name, accents optional"`
	}
)

// Server is the tool server.
type Server struct {
	deps Dependencies
	log  logger.Logger
	mcp  *mcpsdk.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for tool failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New registers every tool on a fresh MCP server.
func New(deps Dependencies, version string, opts ...Option) *Server {
	s := &Server{
		deps: deps,
		log:  logger.Nop(),
		mcp:  mcpsdk.NewServer(&mcpsdk.Implementation{Name: "pitchside", Version: version}, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.register()
	return s
}

// MCP returns the underlying server, for transports other than HTTP.
func (s *Server) MCP() *mcpsdk.Server { return s.mcp }

// Handler serves the tools over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return s.mcp
	}, &mcpsdk.StreamableHTTPOptions{JSONResponse: true})
}

func (s *Server) register() {
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolPositionProfiles,
		Description: "Weighted fitness score per position and recommended position for every player",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ProfilesArgs) (*mcpsdk.CallToolResult, any, error) {
		rows, err := s.deps.Profiles(ctx)
		return s.toolJSON(ctx, ToolPositionProfiles, rows, err)
	})

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolProgressTrends,
		Description: "Players improving or struggling: mean match rating over the last window versus the one before",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, args ProgressArgs) (*mcpsdk.CallToolResult, any, error) {
		var today model.Date
		if strings.TrimSpace(args.Today) != "" {
			d, err := model.ParseDate(strings.TrimSpace(args.Today))
			if err != nil {
				return s.toolJSON(ctx, ToolProgressTrends, nil, err)
			}
			today = d
		}
		p, err := s.deps.Progress(ctx, today)
		return s.toolJSON(ctx, ToolProgressTrends, p, err)
	})

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolWorkload,
		Description: "Matches and minutes played per player",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, args WorkloadArgs) (*mcpsdk.CallToolResult, any, error) {
		w, err := s.deps.Workload(ctx, args.Sort)
		return s.toolJSON(ctx, ToolWorkload, w, err)
	})

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolMatchTop,
		Description: "Best rated players of one match",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, args MatchTopArgs) (*mcpsdk.CallToolResult, any, error) {
		top, err := s.deps.MatchTop(ctx, args.MatchID)
		return s.toolJSON(ctx, ToolMatchTop, top, err)
	})

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolPlayerReport,
		Description: "Report card of one player: ratings, position scores, attendance and match summary",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, args PlayerReportArgs) (*mcpsdk.CallToolResult, any, error) {
		r, err := s.deps.Report(ctx, args.PlayerID)
		if err == nil && strings.EqualFold(args.Format, "markdown") {
			metrics.RecordToolCall(ToolPlayerReport, nil)
			return toolText(report.Markdown(r)), nil, nil
		}
		return s.toolJSON(ctx, ToolPlayerReport, r, err)
	})

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        ToolFindPlayer,
		Description: "Look a player up by approximate name; returns ids with a similarity score",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, args FindPlayerArgs) (*mcpsdk.CallToolResult, any, error) {
		hits, err := s.deps.SearchPlayers(ctx, args.Name)
		return s.toolJSON(ctx, ToolFindPlayer, hits, err)
	})
}

// toolJSON renders v, or err as a tool error.
func (s *Server) toolJSON(ctx context.Context, tool string, v any, err error) (*mcpsdk.CallToolResult, any, error) {
	if err == nil {
		var b []byte
		b, err = codec.MarshalIndent(v, "", "  ")
		if err == nil {
			metrics.RecordToolCall(tool, nil)
			return toolText(string(b)), nil, nil
		}
	}
	metrics.RecordToolCall(tool, err)
	s.log.Warn(ctx, "tool call failed", logger.String("tool", tool), logger.Error(err))
	return toolError(err), nil, nil
}

func toolText(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}

func toolError(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
