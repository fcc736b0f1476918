package store

import (
	"context"
	"fmt"
	"time"
)

// CardClick is a click on a project card in the live showcase.
type CardClick struct {
	Project   string
	Position  int
	SessionID string
	Timestamp time.Time
}

// CardClickStat aggregates clicks per project.
type CardClickStat struct {
	Project     string  `json:"project"`
	Clicks      int64   `json:"clicks"`
	FrontClicks int64   `json:"front_clicks"`
	AvgPosition float64 `json:"avg_position"`
}

func (s *Store) RecordCardClick(ctx context.Context, c CardClick) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO card_clicks (project, position, session_id, timestamp) VALUES (?, ?, ?, ?)`,
		c.Project, c.Position, c.SessionID, c.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("record card click: %w", err)
	}
	return nil
}

// CardClickStats returns per-project totals, most clicked first.
func (s *Store) CardClickStats(ctx context.Context) ([]CardClickStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project,
			COUNT(*) AS clicks,
			SUM(CASE WHEN position = 0 THEN 1 ELSE 0 END) AS front_clicks,
			AVG(position) AS avg_position
		FROM card_clicks
		GROUP BY project
		ORDER BY clicks DESC, project ASC`)
	if err != nil {
		return nil, fmt.Errorf("query card clicks: %w", err)
	}
	defer rows.Close()

	var out []CardClickStat
	for rows.Next() {
		var st CardClickStat
		if err := rows.Scan(&st.Project, &st.Clicks, &st.FrontClicks, &st.AvgPosition); err != nil {
			return nil, fmt.Errorf("scan card click stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
