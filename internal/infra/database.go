package infra

import (
	"fmt"

	"github.com/email-do-dev/prodata/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables and applies the idempotent SQL patches that AutoMigrate
// cannot express (extensions, partial indexes, seeds de referência).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations cria o schema. Também é chamado pelos testes de integração
// contra o container descartável.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid precisa do pgcrypto em Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.LinhaProducao{},
		&model.Ordem{},
		&model.Subetapa{},
		&model.RegistroPeso{},
		&model.PosicaoLinha{},
		&model.Operador{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches roda DDL idempotente que o AutoMigrate não cobre.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Backstop do gerador de código: mesmo que o advisory lock falhe em
		// alguma topologia (pgbouncer em statement mode), dois códigos iguais
		// nunca persistem.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_ordem_producao_codigo') THEN
		    CREATE UNIQUE INDEX uni_ordem_producao_codigo ON ordem_producao (codigo);
		  END IF;
		END $$`,
		// Consulta dominante do livro de pesos: todos os registros de uma subetapa.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_registro_peso_subetapa') THEN
		    CREATE INDEX idx_registro_peso_subetapa ON registro_peso (subetapa_id, data_registro DESC);
		  END IF;
		END $$`,
		// Painéis filtram por status constantemente.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ordem_producao_status') THEN
		    CREATE INDEX idx_ordem_producao_status ON ordem_producao (status);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
