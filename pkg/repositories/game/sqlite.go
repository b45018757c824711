package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadedpez/tucotrainer/pkg/db/migrations"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const (
	selectRoundColumns = `id, player_id, channel_id, player_cards, dealer_cards, player_score,
		dealer_score, bet, payout, outcome, doubled_down, decisions, completed_at`

	selectAttemptColumns = `id, player_id, scenario_id, player_cards, dealer_up_card,
		recommended, answered, correct, answered_at`

	selectStatsColumns = `player_id, rounds_played, wins, losses, pushes, blackjacks, busts,
		double_downs, total_bet, total_payout, training_attempts, training_correct, last_updated`
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens the database file at dbPath, creating its directory, and
// applies the embedded migrations
func OpenSQLite(dbPath string) (*sql.DB, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if _, err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return db, nil
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryWithDB uses a database already opened with OpenSQLite,
// so the wallet repository can share it
func NewSQLiteRepositoryWithDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveRoundResult stores the round and updates the player's statistics in
// one transaction
func (r *SQLiteRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	if result == nil || result.PlayerID == "" {
		return ErrInvalidRecord
	}

	playerCards, err := json.Marshal(result.PlayerCards)
	if err != nil {
		return fmt.Errorf("error marshaling player cards: %w", err)
	}
	dealerCards, err := json.Marshal(result.DealerCards)
	if err != nil {
		return fmt.Errorf("error marshaling dealer cards: %w", err)
	}
	decisions, err := json.Marshal(result.Decisions)
	if err != nil {
		return fmt.Errorf("error marshaling decisions: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO round_results (`+selectRoundColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.PlayerID, result.ChannelID, string(playerCards), string(dealerCards),
		result.PlayerScore, result.DealerScore, int64(result.Bet), int64(result.Payout),
		string(result.Outcome), result.DoubledDown, string(decisions), result.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving round result: %w", err)
	}

	if err := updateStats(ctx, tx, result.PlayerID, func(s *entities.PlayerStatistics) { s.AddRound(result) }); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPlayerResults retrieves a player's round results, newest first
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.queryResults(ctx, "player_id", playerID, limit)
}

// GetChannelResults retrieves a channel's round results, newest first
func (r *SQLiteRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.RoundResult, error) {
	return r.queryResults(ctx, "channel_id", channelID, limit)
}

func (r *SQLiteRepository) queryResults(ctx context.Context, column, value string, limit int) ([]*entities.RoundResult, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT ` + selectRoundColumns + ` FROM round_results
		WHERE ` + column + ` = ? ORDER BY completed_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, value, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying round results: %w", err)
	}
	defer rows.Close()

	results := []*entities.RoundResult{}
	for rows.Next() {
		var (
			res                               entities.RoundResult
			playerCards, dealerCards, decided string
			bet, payout                       int64
			outcome                           string
		)
		if err := rows.Scan(&res.ID, &res.PlayerID, &res.ChannelID, &playerCards, &dealerCards,
			&res.PlayerScore, &res.DealerScore, &bet, &payout, &outcome, &res.DoubledDown,
			&decided, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("error scanning round result: %w", err)
		}
		if err := json.Unmarshal([]byte(playerCards), &res.PlayerCards); err != nil {
			return nil, fmt.Errorf("error unmarshaling player cards: %w", err)
		}
		if err := json.Unmarshal([]byte(dealerCards), &res.DealerCards); err != nil {
			return nil, fmt.Errorf("error unmarshaling dealer cards: %w", err)
		}
		if err := json.Unmarshal([]byte(decided), &res.Decisions); err != nil {
			return nil, fmt.Errorf("error unmarshaling decisions: %w", err)
		}
		res.Bet = entities.Money(bet)
		res.Payout = entities.Money(payout)
		res.Outcome = entities.Outcome(outcome)
		results = append(results, &res)
	}

	return results, rows.Err()
}

// SaveTrainingAttempt stores a trainer answer and updates the player's statistics
func (r *SQLiteRepository) SaveTrainingAttempt(ctx context.Context, attempt *entities.TrainingAttempt) error {
	if attempt == nil || attempt.PlayerID == "" {
		return ErrInvalidRecord
	}

	playerCards, err := json.Marshal(attempt.PlayerCards)
	if err != nil {
		return fmt.Errorf("error marshaling player cards: %w", err)
	}
	upCard, err := json.Marshal(attempt.DealerUpCard)
	if err != nil {
		return fmt.Errorf("error marshaling dealer card: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO training_attempts (`+selectAttemptColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID, attempt.PlayerID, attempt.ScenarioID, string(playerCards), string(upCard),
		attempt.Recommended.String(), attempt.Answered.String(), attempt.Correct, attempt.AnsweredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving training attempt: %w", err)
	}

	if err := updateStats(ctx, tx, attempt.PlayerID, func(s *entities.PlayerStatistics) { s.AddAttempt(attempt) }); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPlayerAttempts retrieves a player's trainer answers, newest first
func (r *SQLiteRepository) GetPlayerAttempts(ctx context.Context, playerID string, limit int) ([]*entities.TrainingAttempt, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+selectAttemptColumns+` FROM training_attempts
		WHERE player_id = ? ORDER BY answered_at DESC, rowid DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying training attempts: %w", err)
	}
	defer rows.Close()

	attempts := []*entities.TrainingAttempt{}
	for rows.Next() {
		var (
			a                     entities.TrainingAttempt
			playerCards, upCard   string
			recommended, answered string
		)
		if err := rows.Scan(&a.ID, &a.PlayerID, &a.ScenarioID, &playerCards, &upCard,
			&recommended, &answered, &a.Correct, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("error scanning training attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(playerCards), &a.PlayerCards); err != nil {
			return nil, fmt.Errorf("error unmarshaling player cards: %w", err)
		}
		if err := json.Unmarshal([]byte(upCard), &a.DealerUpCard); err != nil {
			return nil, fmt.Errorf("error unmarshaling dealer card: %w", err)
		}
		if a.Recommended, err = entities.ParseAction(recommended); err != nil {
			return nil, err
		}
		if a.Answered, err = entities.ParseAction(answered); err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}

	return attempts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (*entities.PlayerStatistics, error) {
	var (
		stats           entities.PlayerStatistics
		totalBet, total int64
	)
	err := row.Scan(&stats.PlayerID, &stats.RoundsPlayed, &stats.Wins, &stats.Losses, &stats.Pushes,
		&stats.Blackjacks, &stats.Busts, &stats.DoubleDowns, &totalBet, &total,
		&stats.TrainingAttempts, &stats.TrainingCorrect, &stats.LastUpdated)
	if err != nil {
		return nil, err
	}
	stats.TotalBet = entities.Money(totalBet)
	stats.TotalPayout = entities.Money(total)
	return &stats, nil
}

// GetPlayerStatistics returns the player's statistics, empty if the player
// has no records
func (r *SQLiteRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectStatsColumns+` FROM player_statistics WHERE player_id = ?`, playerID)
	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &entities.PlayerStatistics{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player statistics: %w", err)
	}
	return stats, nil
}

// GetAllPlayerStatistics returns statistics for every player, ordered by player ID
func (r *SQLiteRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectStatsColumns+` FROM player_statistics ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query player statistics: %w", err)
	}
	defer rows.Close()

	all := []*entities.PlayerStatistics{}
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player statistics: %w", err)
		}
		all = append(all, stats)
	}
	return all, rows.Err()
}

func updateStats(ctx context.Context, tx *sql.Tx, playerID string, apply func(*entities.PlayerStatistics)) error {
	row := tx.QueryRowContext(ctx, `SELECT `+selectStatsColumns+` FROM player_statistics WHERE player_id = ?`, playerID)
	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		stats = &entities.PlayerStatistics{PlayerID: playerID}
	} else if err != nil {
		return fmt.Errorf("failed to get player statistics: %w", err)
	}

	apply(stats)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 13), ", ")
	_, err = tx.ExecContext(ctx, `
		INSERT INTO player_statistics (`+selectStatsColumns+`)
		VALUES (`+placeholders+`)
		ON CONFLICT(player_id) DO UPDATE SET
			rounds_played = excluded.rounds_played,
			wins = excluded.wins,
			losses = excluded.losses,
			pushes = excluded.pushes,
			blackjacks = excluded.blackjacks,
			busts = excluded.busts,
			double_downs = excluded.double_downs,
			total_bet = excluded.total_bet,
			total_payout = excluded.total_payout,
			training_attempts = excluded.training_attempts,
			training_correct = excluded.training_correct,
			last_updated = excluded.last_updated`,
		stats.PlayerID, stats.RoundsPlayed, stats.Wins, stats.Losses, stats.Pushes,
		stats.Blackjacks, stats.Busts, stats.DoubleDowns, int64(stats.TotalBet), int64(stats.TotalPayout),
		stats.TrainingAttempts, stats.TrainingCorrect, stats.LastUpdated.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update player statistics: %w", err)
	}
	return nil
}

// PruneResultsPerPlayer drops all but the newest keep rounds for each player
func (r *SQLiteRepository) PruneResultsPerPlayer(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, ErrInvalidRecord
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM round_results WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY player_id ORDER BY completed_at DESC, rowid DESC
				) AS rn
				FROM round_results
			) WHERE rn > ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune round results: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(pruned), nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
