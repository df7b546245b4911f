package warns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sirajbot/siraj/core/apperr"
	"github.com/sirajbot/siraj/core/logger"
)

// MaxReasonLength caps the free-text reason of a warning.
const MaxReasonLength = 500

// DefaultReason substitutes an empty reason.
const DefaultReason = "No reason provided"

// Service applies the moderation rules on top of the repository and
// translates storage errors into the boundary taxonomy.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Warn records a warning against userID and returns the stored record
// together with the user's resulting active-warning count.
func (s *Service) Warn(ctx context.Context, chatID, userID, issuerID int64, reason string) (Warning, int, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason
	}
	if len([]rune(reason)) > MaxReasonLength {
		return Warning{}, 0, apperr.Validation(
			fmt.Sprintf("Reason is too long! Please limit to %d characters.", MaxReasonLength))
	}

	w := Warning{
		ChatID:   chatID,
		UserID:   userID,
		WarnedBy: issuerID,
		Reason:   reason,
		WarnedAt: s.now().UTC(),
		Status:   StatusActive,
	}
	id, err := s.repo.Create(ctx, w)
	if err != nil {
		return Warning{}, 0, apperr.Transient("An error occurred while issuing the warning", err)
	}
	w.ID = id

	total, err := s.repo.CountActive(ctx, chatID, userID)
	if err != nil {
		return Warning{}, 0, apperr.Transient("An error occurred while issuing the warning", err)
	}

	logger.SVCWarns.LogAttrs(ctx, slog.LevelInfo, "warning issued",
		slog.String("event", "warn.created"),
		slog.Int64("warn_id", w.ID),
		slog.Int64("chat_id", chatID),
		slog.Int64("user_id", userID),
		slog.Int("total_active", total),
	)
	return w, total, nil
}

// Remove soft-deletes a warning by id and returns the record as it was
// before deletion.
func (s *Service) Remove(ctx context.Context, chatID, id int64) (Warning, error) {
	w, err := s.repo.SoftDelete(ctx, chatID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return Warning{}, apperr.NotFound(fmt.Sprintf("Warning #%d not found.", id))
	case errors.Is(err, ErrAlreadyDeleted):
		return Warning{}, apperr.NotFound(fmt.Sprintf("Warning #%d has already been deleted.", id))
	case err != nil:
		return Warning{}, apperr.Transient("An error occurred while deleting the warning", err)
	}

	logger.SVCWarns.LogAttrs(ctx, slog.LevelInfo, "warning deleted",
		slog.String("event", "warn.deleted"),
		slog.Int64("warn_id", w.ID),
		slog.Int64("chat_id", chatID),
		slog.Int64("user_id", w.UserID),
	)
	return w, nil
}

// UserWarnings lists a user's active warnings, newest first.
func (s *Service) UserWarnings(ctx context.Context, chatID, userID int64) ([]Warning, error) {
	rows, err := s.repo.ListUser(ctx, chatID, userID)
	if err != nil {
		return nil, apperr.Transient("An error occurred while fetching warnings", err)
	}
	return rows, nil
}

// ChatWarnings lists all active warnings in the chat, newest first.
func (s *Service) ChatWarnings(ctx context.Context, chatID int64) ([]Warning, error) {
	rows, err := s.repo.ListChat(ctx, chatID)
	if err != nil {
		return nil, apperr.Transient("An error occurred while fetching warnings", err)
	}
	return rows, nil
}
