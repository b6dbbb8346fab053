package pricing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrRuleNotFound = errors.New("pricing rule not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *Rule) (*Rule, error) {
	query := `
		INSERT INTO pricing_rules (name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active, created_at
	`

	var created Rule
	err := r.db.GetContext(ctx, &created, query,
		rule.Name, rule.RuleType, rule.StartClock, rule.EndClock,
		pq.Int64Array(rule.DaysOfWeek), rule.Multiplier, rule.Surcharge, rule.IsActive)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Rule, error) {
	query := `
		SELECT id, name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active, created_at
		FROM pricing_rules
		ORDER BY created_at DESC
	`

	var rules []Rule
	err := r.db.SelectContext(ctx, &rules, query)
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *repository) GetActive(ctx context.Context) ([]Rule, error) {
	query := `
		SELECT id, name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active, created_at
		FROM pricing_rules
		WHERE is_active = TRUE
		ORDER BY id ASC
	`

	var rules []Rule
	err := r.db.SelectContext(ctx, &rules, query)
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Rule, error) {
	query := `
		SELECT id, name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active, created_at
		FROM pricing_rules
		WHERE id = $1
	`

	var rule Rule
	err := r.db.GetContext(ctx, &rule, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

func (r *repository) Update(ctx context.Context, rule *Rule) (*Rule, error) {
	query := `
		UPDATE pricing_rules
		SET name = $2, rule_type = $3, start_clock = $4, end_clock = $5, days_of_week = $6, multiplier = $7, surcharge = $8, is_active = $9
		WHERE id = $1
		RETURNING id, name, rule_type, start_clock, end_clock, days_of_week, multiplier, surcharge, is_active, created_at
	`

	var updated Rule
	err := r.db.GetContext(ctx, &updated, query,
		rule.ID, rule.Name, rule.RuleType, rule.StartClock, rule.EndClock,
		pq.Int64Array(rule.DaysOfWeek), rule.Multiplier, rule.Surcharge, rule.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
