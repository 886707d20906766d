package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// ScoreStore records finished games. GameManager works without one.
type ScoreStore interface {
	SaveGameResult(result GameResult) error
	GetHighScores(limit, offset int) ([]Score, error)
	GetBestScore() (int, error)
}

type HighScoreService struct {
	db *sql.DB
}

const tableName = "high_scores"

// GameResult is what gets written when a game ends.
type GameResult struct {
	PlayerName string
	Score      int
	MaxTile    int
	Moves      int
	Outcome    State
}

type Score struct {
	ID         int
	PlayerName string
	Score      int
	MaxTile    int
	Moves      int
	Outcome    string
	CreatedAt  time.Time
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	// sqlite serialises writers anyway; one connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		max_tile INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveGameResult(result GameResult) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, max_tile, moves, outcome, created_at)
	VALUES (?, ?, ?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL,
		result.PlayerName,
		result.Score,
		result.MaxTile,
		result.Moves,
		result.Outcome.String(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", result.PlayerName, err)
	}

	return nil
}

// GetHighScores retrieves a page of scores, best score first, ties broken by max tile.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, max_tile, moves, outcome, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, max_tile DESC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score

	for rows.Next() {
		var score Score
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.MaxTile,
			&score.Moves, &score.Outcome, &score.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// GetBestScore returns 0 when nothing has been recorded yet.
func (serviceImpl *HighScoreService) GetBestScore() (int, error) {
	const bestSQL = `SELECT COALESCE(MAX(score), 0) FROM ` + tableName + `;`
	var best int
	if err := serviceImpl.db.QueryRow(bestSQL).Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to get best score: %w", err)
	}
	return best, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}
