package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/habitus/forecast-api/infrastructure/database/postgres"
	"github.com/habitus/forecast-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
)

//go:generate mockgen -source=financial_data.go -destination=mocks/financial_data_mock.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	financialDataTable = "financial_data"
)

type FinancialDataRepository interface {
	Create(ctx context.Context, data *domain.FinancialData) error
	GetByID(ctx context.Context, id string) (*domain.FinancialData, error)
	List(ctx context.Context, filter domain.FinancialDataFilter) ([]*domain.FinancialData, error)
	Delete(ctx context.Context, id string) error
}

type financialDataRepository struct {
	conn *postgres.Connection
}

func NewFinancialDataRepository(conn *postgres.Connection) FinancialDataRepository {
	return &financialDataRepository{
		conn: conn,
	}
}

func (r *financialDataRepository) Create(ctx context.Context, data *domain.FinancialData) error {
	datasetJSON, err := json.Marshal(data.Dataset)
	if err != nil {
		return fmt.Errorf("erro ao serializar dataset para JSON: %w", err)
	}

	categoriesJSON, err := json.Marshal(data.Categories)
	if err != nil {
		return fmt.Errorf("erro ao serializar categorias para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert(financialDataTable).
		Columns("id", "user_id", "title", "description", "file_name", "dataset", "categories", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.Title, data.Description, data.FileName, datasetJSON, categoriesJSON, data.CreatedAt, data.UpdatedAt).
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

func (r *financialDataRepository) GetByID(ctx context.Context, id string) (*domain.FinancialData, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "title", "description", "file_name", "dataset", "categories", "created_at", "updated_at").
		From(financialDataTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	data := &domain.FinancialData{}
	var datasetJSON, categoriesJSON []byte

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&data.ID,
		&data.UserID,
		&data.Title,
		&data.Description,
		&data.FileName,
		&datasetJSON,
		&categoriesJSON,
		&data.CreatedAt,
		&data.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear dados financeiros: %w", err)
	}

	if datasetJSON != nil {
		dataset := &domain.FinancialDataset{}
		if err := json.Unmarshal(datasetJSON, dataset); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do dataset: %w", err)
		}
		data.Dataset = dataset
	}

	if err := unmarshalCategories(categoriesJSON, data); err != nil {
		return nil, err
	}

	return data, nil
}

// List não carrega o dataset, apenas os dados de identificação e as categorias
func (r *financialDataRepository) List(ctx context.Context, filter domain.FinancialDataFilter) ([]*domain.FinancialData, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "title", "description", "file_name", "categories", "created_at", "updated_at").
		From(financialDataTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"user_id": filter.UserID})
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

	list := make([]*domain.FinancialData, 0)
	for rows.Next() {
		data := &domain.FinancialData{}
		var categoriesJSON []byte

		if err := rows.Scan(
			&data.ID,
			&data.UserID,
			&data.Title,
			&data.Description,
			&data.FileName,
			&categoriesJSON,
			&data.CreatedAt,
			&data.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear dados financeiros: %w", err)
		}

		if err := unmarshalCategories(categoriesJSON, data); err != nil {
			return nil, err
		}

		list = append(list, data)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return list, nil
}

// Delete remove os dados financeiros; os cenários vinculados são removidos em cascata
// Delete remove a planilha e os cenários gerados a partir dela na mesma transação
func (r *financialDataRepository) Delete(ctx context.Context, id string) error {
	scenariosQuery, scenariosArgs, err := squirrel.
		Delete(scenariosTable).
		Where(squirrel.Eq{"financial_data_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	query, args, err := squirrel.
		Delete(financialDataTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, scenariosQuery, scenariosArgs...); err != nil {
			return fmt.Errorf("erro ao remover cenários da planilha: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao executar a query: %w", err)
		}

		return nil
	})
}

func unmarshalCategories(categoriesJSON []byte, data *domain.FinancialData) error {
	if categoriesJSON == nil {
		data.Categories = []domain.CategoryInfo{}
		return nil
	}

	if err := json.Unmarshal(categoriesJSON, &data.Categories); err != nil {
		return fmt.Errorf("erro ao deserializar JSON de categorias: %w", err)
	}

	return nil
}
