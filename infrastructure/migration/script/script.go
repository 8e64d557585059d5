package main

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/habitus/forecast-api/infrastructure/database/postgres"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		lastname      VARCHAR(100) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INTEGER NOT NULL DEFAULT 3,
		created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS financial_data (
		id          VARCHAR(6) PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		file_name   VARCHAR(255) NOT NULL,
		dataset     JSONB NOT NULL,
		categories  JSONB NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_financial_data_user_id ON financial_data(user_id)`,
	`CREATE TABLE IF NOT EXISTS scenarios (
		id                VARCHAR(6) PRIMARY KEY,
		user_id           INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		financial_data_id VARCHAR(6) NOT NULL REFERENCES financial_data(id) ON DELETE CASCADE,
		name              VARCHAR(255) NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		scenario_type     VARCHAR(20) NOT NULL,
		result            JSONB NOT NULL,
		created_at        TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_user_id ON scenarios(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_financial_data_id ON scenarios(financial_data_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at)`,
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("migration: iniciando script de migração")
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for _, statement := range schema {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	logrus.WithField("statements", len(schema)).Info("migration: esquema criado")
	return nil
}

// seedAdmin cria o administrador quando o email ainda não está cadastrado
func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		logrus.WithField("email", email).Info("migration: administrador já cadastrado")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (name, lastname, email, password_hash, active, role_id) VALUES ($1, $2, $3, $4, TRUE, 1)`,
		"Admin", "Habitus", email, string(hash),
	)
	if err != nil {
		return err
	}

	logrus.WithField("email", email).Info("migration: administrador criado")
	return nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}

		if cfg.Auth.AdminPassword == "" {
			logrus.Warn("migration: AUTH_ADMIN_PASSWORD não definida, administrador não será criado")
			return nil
		}
		return seedAdmin(ctx, tx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	})
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao aplicar migração")
	}

	logrus.Info("migration: concluída com sucesso")
}
