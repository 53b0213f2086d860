package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"slide-presenter/internal/models"
)

// HistoryService records which decks have been presented
type HistoryService struct {
	database *sql.DB
}

// NewHistoryService creates a new history service
func NewHistoryService(database *sql.DB) *HistoryService {
	return &HistoryService{
		database: database,
	}
}

// RecordOpen upserts a history row for a presented deck
func (hs *HistoryService) RecordOpen(deckID, deckPath string) error {
	if deckID == "" {
		return fmt.Errorf("deckID is required")
	}

	now := time.Now()
	query := `INSERT INTO presentation_history
		(deck_id, deck_path, open_count, first_opened_at, last_opened_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(deck_id) DO UPDATE SET
			deck_path = excluded.deck_path,
			open_count = open_count + 1,
			last_opened_at = excluded.last_opened_at`

	if _, err := hs.database.Exec(query, deckID, deckPath, now, now); err != nil {
		return fmt.Errorf("failed to record deck open: %w", err)
	}

	log.Printf("Recorded presentation: deck=%s, path=%s", deckID, deckPath)
	return nil
}

// GetRecent returns up to limit history records, most recent first
func (hs *HistoryService) GetRecent(limit int) ([]*models.HistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT deck_id, deck_path, open_count, first_opened_at, last_opened_at
		FROM presentation_history ORDER BY last_opened_at DESC LIMIT ?`

	rows, err := hs.database.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []*models.HistoryRecord
	for rows.Next() {
		var record models.HistoryRecord
		err := rows.Scan(
			&record.DeckID,
			&record.DeckPath,
			&record.OpenCount,
			&record.FirstOpenedAt,
			&record.LastOpenedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return records, nil
}

// GetRecord returns the history record for one deck
func (hs *HistoryService) GetRecord(deckID string) (*models.HistoryRecord, error) {
	query := `SELECT deck_id, deck_path, open_count, first_opened_at, last_opened_at
		FROM presentation_history WHERE deck_id = ?`

	var record models.HistoryRecord
	err := hs.database.QueryRow(query, deckID).Scan(
		&record.DeckID,
		&record.DeckPath,
		&record.OpenCount,
		&record.FirstOpenedAt,
		&record.LastOpenedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("deck not found: %s", deckID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	return &record, nil
}
