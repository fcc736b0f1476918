package store

import (
	"context"
	"fmt"
	"time"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalMessages    int64           `json:"total_messages"`
	UnsentMessages   int64           `json:"unsent_messages"`
	TotalCardClicks  int64           `json:"total_card_clicks"`
	TopCards         []CardClickStat `json:"top_cards"`
	RecentVisitors   []Visitor       `json:"recent_visitors"`
}

// Stats gathers the dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	today := now.Truncate(24 * time.Hour)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{week}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&stats.UnsentMessages, `SELECT COUNT(*) FROM messages WHERE sent = 0`, nil},
		{&stats.TotalCardClicks, `SELECT COUNT(*) FROM card_clicks`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats %q: %w", c.query, err)
		}
	}

	var err error
	if stats.TopCards, err = s.CardClickStats(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}
