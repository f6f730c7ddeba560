// Package bridge is the agent bridge: a separate, short-lived process
// that owns standard input/output for a line-delimited JSON-RPC
// dialogue with an agent, exposing a fixed tool surface over the same
// database the review terminal writes to. Grounded on the
// modelcontextprotocol/go-sdk usage pattern (rpggio-trellis's
// internal/mcp, which registers resources and tools against an
// *mcp.Server and serves them over a transport); generalized from that
// reference's resource-registration shape into this package's
// tool-registration shape, since airev has no documentation resources
// to expose, only the six tools the spec names.
package bridge

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/gitworker"
	"github.com/airev/airev/internal/store"
)

// Server answers MCP tool calls against a synchronous *store.Store. The
// agent bridge process opens its own Store with store.RoleBridge (never
// checkpoints, per the spec's no-racing-checkpoints rule) and hands it
// here.
type Server struct {
	store *store.Store
}

func NewServer(s *store.Store) *Server {
	return &Server{store: s}
}

// Run serves the tool surface over stdio until standard input closes.
func (b *Server) Run(ctx context.Context) error {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "airev", Version: "1"}, nil)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "list_sessions",
		Description: "List review sessions, optionally filtered by repository path.",
	}, b.listSessions)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "get_session",
		Description: "Fetch a session and all of its comments.",
	}, b.getSession)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "list_comments",
		Description: "List a session's comments, optionally filtered by file, severity, or type.",
	}, b.listComments)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "add_annotation",
		Description: "Attach a typed, severity-tagged comment to a diff line.",
	}, b.addAnnotation)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "resolve_comment",
		Description: "Mark a comment resolved, advancing its thread (if any) to resolved.",
	}, b.resolveComment)

	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "get_hunk_context",
		Description: "Return the hunk header and surrounding lines around a diff line.",
	}, b.getHunkContext)

	return srv.Run(ctx, &sdkmcp.StdioTransport{})
}

func (b *Server) listSessions(ctx context.Context, _ *sdkmcp.CallToolRequest, args ListSessionsArgs) (*sdkmcp.CallToolResult, ListSessionsResult, error) {
	rows, err := b.store.ListSessions(ctx, args.RepoPath)
	if err != nil {
		return nil, ListSessionsResult{}, err
	}
	out := make([]SessionInfo, len(rows))
	for i, r := range rows {
		out[i] = SessionInfo{
			ID: r.ID, RepoPath: r.RepoPath, DiffMode: r.DiffMode, DiffArgs: r.DiffArgs,
			CreatedAt: r.CreatedAt, CommentCount: r.CommentCount,
		}
	}
	return nil, ListSessionsResult{Sessions: out}, nil
}

func (b *Server) getSession(ctx context.Context, _ *sdkmcp.CallToolRequest, args GetSessionArgs) (*sdkmcp.CallToolResult, GetSessionResult, error) {
	sess, comments, err := b.store.GetSession(ctx, args.SessionID)
	if err != nil {
		return nil, GetSessionResult{}, err
	}
	return nil, GetSessionResult{
		ID: sess.ID, RepoPath: sess.RepoPath, DiffMode: sess.DiffMode, DiffArgs: sess.DiffArgs,
		CreatedAt: sess.CreatedAt, Comments: toCommentInfos(comments),
	}, nil
}

func (b *Server) listComments(ctx context.Context, _ *sdkmcp.CallToolRequest, args ListCommentsArgs) (*sdkmcp.CallToolResult, ListCommentsResult, error) {
	comments, err := b.store.ListComments(ctx, args.SessionID, args.FilePath, args.Severity, args.CommentType)
	if err != nil {
		return nil, ListCommentsResult{}, err
	}
	return nil, ListCommentsResult{Comments: toCommentInfos(comments)}, nil
}

func (b *Server) addAnnotation(ctx context.Context, _ *sdkmcp.CallToolRequest, args AddAnnotationArgs) (*sdkmcp.CallToolResult, AddAnnotationResult, error) {
	ct := domain.CommentType(args.CommentType)
	sev := domain.Severity(args.Severity)
	if !ct.Valid() {
		return nil, AddAnnotationResult{}, fmt.Errorf("validation: invalid comment type %q", args.CommentType)
	}
	if !sev.Valid() {
		return nil, AddAnnotationResult{}, fmt.Errorf("validation: invalid severity %q", args.Severity)
	}

	saved, err := b.store.SaveComment(ctx, domain.Comment{
		SessionID:  args.SessionID,
		FilePath:   args.FilePath,
		LineNumber: args.LineNumber,
		Type:       ct,
		Severity:   sev,
		Body:       args.Body,
	})
	if err != nil {
		return nil, AddAnnotationResult{}, err
	}
	return nil, AddAnnotationResult{ID: saved.ID, CreatedAt: saved.CreatedAt}, nil
}

func (b *Server) resolveComment(ctx context.Context, _ *sdkmcp.CallToolRequest, args ResolveCommentArgs) (*sdkmcp.CallToolResult, ResolveCommentResult, error) {
	resolvedAt, err := b.store.ResolveComment(ctx, args.CommentID, args.ResolutionNote)
	if err != nil {
		return nil, ResolveCommentResult{}, err
	}
	return nil, ResolveCommentResult{ID: args.CommentID, ResolvedAt: resolvedAt}, nil
}

func (b *Server) getHunkContext(ctx context.Context, _ *sdkmcp.CallToolRequest, args GetHunkContextArgs) (*sdkmcp.CallToolResult, GetHunkContextResult, error) {
	sess, _, err := b.store.GetSession(ctx, args.SessionID)
	if err != nil {
		return nil, GetHunkContextResult{}, err
	}
	mode, err := domain.ParseDiffMode(sess.DiffMode, sess.DiffArgs)
	if err != nil {
		return nil, GetHunkContextResult{}, err
	}
	payload, err := gitworker.ComputeDiffSync(sess.RepoPath, mode)
	if err != nil {
		return nil, GetHunkContextResult{}, err
	}

	header, lines, err := hunkContext(payload, args.FilePath, args.LineNumber, args.ContextLines)
	if err != nil {
		return nil, GetHunkContextResult{}, err
	}
	return nil, GetHunkContextResult{HunkHeader: header, Lines: lines}, nil
}

func toCommentInfos(comments []domain.Comment) []CommentInfo {
	out := make([]CommentInfo, len(comments))
	for i, c := range comments {
		out[i] = CommentInfo{
			ID: c.ID, SessionID: c.SessionID, FilePath: c.FilePath,
			LineNumber: c.LineNumber, HunkOffset: c.HunkOffset,
			Type: string(c.Type), Severity: string(c.Severity), Body: c.Body,
			CreatedAt: c.CreatedAt, ResolvedAt: c.ResolvedAt, ThreadID: c.ThreadID,
		}
	}
	return out
}
