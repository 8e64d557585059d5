package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/habitus/forecast-api/infrastructure/database/postgres"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/lib/pq"
)

//go:generate mockgen -source=scenario.go -destination=mocks/scenario_mock.go -package=mocks

const (
	scenariosTable = "scenarios"
)

var scenarioColumns = []string{"id", "user_id", "financial_data_id", "name", "description", "scenario_type", "result", "created_at"}

type ScenarioRepository interface {
	Create(ctx context.Context, scenario *domain.Scenario) error
	GetByID(ctx context.Context, id string) (*domain.Scenario, error)
	List(ctx context.Context, filter domain.ScenarioFilter) ([]*domain.Scenario, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type scenarioRepository struct {
	conn *postgres.Connection
}

func NewScenarioRepository(conn *postgres.Connection) ScenarioRepository {
	return &scenarioRepository{
		conn: conn,
	}
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	resultJSON, err := json.Marshal(scenario.Result)
	if err != nil {
		return fmt.Errorf("erro ao serializar resultado do cenário para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert(scenariosTable).
		Columns(scenarioColumns...).
		Values(
			scenario.ID,
			scenario.UserID,
			scenario.FinancialDataID,
			scenario.Name,
			scenario.Description,
			string(scenario.Type),
			resultJSON,
			scenario.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *scenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	query, args, err := squirrel.
		Select(scenarioColumns...).
		From(scenariosTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	scenario, err := r.scan(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear cenário: %w", err)
	}

	return scenario, nil
}

func (r *scenarioRepository) List(ctx context.Context, filter domain.ScenarioFilter) ([]*domain.Scenario, error) {
	queryBuilder := squirrel.
		Select(scenarioColumns...).
		From(scenariosTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"user_id": filter.UserID})
	}

	if filter.FinancialDataID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"financial_data_id": filter.FinancialDataID})
	}

	if filter.Type != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"scenario_type": string(filter.Type)})
	}

	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		queryBuilder = queryBuilder.Offset(filter.Offset)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	scenarios := make([]*domain.Scenario, 0)
	for rows.Next() {
		scenario, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cenários: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return scenarios, nil
}

func (r *scenarioRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(scenariosTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// DeleteOlderThan remove os cenários gerados antes de cutoff e retorna quantos foram removidos
func (r *scenarioRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(scenariosTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *scenarioRepository) scan(row rowScanner) (*domain.Scenario, error) {
	scenario := &domain.Scenario{}
	var scenarioType string
	var resultJSON []byte

	err := row.Scan(
		&scenario.ID,
		&scenario.UserID,
		&scenario.FinancialDataID,
		&scenario.Name,
		&scenario.Description,
		&scenarioType,
		&resultJSON,
		&scenario.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	scenario.Type = domain.ScenarioType(scenarioType)

	if resultJSON != nil {
		result := &domain.ScenarioResult{}
		if err := json.Unmarshal(resultJSON, result); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do resultado: %w", err)
		}
		scenario.Result = result
	}

	return scenario, nil
}
