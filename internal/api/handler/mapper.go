package handler

import (
	"time"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// --- Request → Service input ---

func toReportInput(req reportBugRequest, idempotencyKey string) ports.ReportBugInput {
	return ports.ReportBugInput{
		Title:          req.Title,
		Description:    req.Description,
		Steps:          req.Steps,
		Priority:       req.Priority,
		IdempotencyKey: idempotencyKey,
	}
}

func toListInput(q listQuery) ports.ListBugsInput {
	return ports.ListBugsInput{Search: q.Search, Status: q.Status, Priority: q.Priority}
}

// --- Domain → Response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

func toBugResponse(b domain.Bug) bugResponse {
	return bugResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Steps:       b.Steps,
		Priority:    string(b.Priority),
		Status:      string(b.Status),
		ReportedBy:  b.ReportedBy,
		ReportedAt:  b.ReportedAt.Format(time.RFC3339),
		VerifiedBy:  b.VerifiedBy,
		VerifiedAt:  formatOptional(b.VerifiedAt),
		CompletedAt: formatOptional(b.CompletedAt),
	}
}

func toBugResponses(bugs []domain.Bug) []bugResponse {
	out := make([]bugResponse, 0, len(bugs))
	for _, b := range bugs {
		out = append(out, toBugResponse(b))
	}
	return out
}

func toBoardResponse(role domain.Role, board domain.Board, refreshedAt time.Time) boardResponse {
	resp := boardResponse{
		Dashboard: string(role),
		Filter:    string(role.Capabilities().DashboardFilter),
		Columns:   make([]columnResponse, 0, len(board.Columns)),
		Total:     board.Total(),
	}
	for _, col := range board.Columns {
		resp.Columns = append(resp.Columns, columnResponse{
			Status: string(col.Status),
			Count:  col.Count(),
			Bugs:   toBugResponses(col.Bugs),
		})
	}
	if !refreshedAt.IsZero() {
		resp.RefreshedAt = refreshedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
