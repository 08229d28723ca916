package http

import (
	"fmt"
	"net/http"
)

func (s *Service) listLogs(w http.ResponseWriter, r *http.Request) error {
	page, err := bindPage(r)
	if err != nil {
		return err
	}

	entries, total, err := s.deps.AuditLog.List(r.Context(), page)
	if err != nil {
		return fmt.Errorf("audit log list: %w", err)
	}

	return writeJSON(w, http.StatusOK, logPageResponse{
		Message:    "Logs retrieved successfully!",
		pagination: newPagination(page, total),
		Logs:       entries,
	})
}
