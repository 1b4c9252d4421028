package storage

// sqlite.go — persistencia de recetas y ventas.
//
// Dos responsabilidades en la misma base:
//   - `forge_items` + `forge_recipes` + `forge_requirements`: la tabla de
//     items forjables que escribe el scraper externo (aquí vía UpsertForgeItems
//     para el seeding). Lectura: tres selects y un join en memoria.
//   - `ah_sales`: contador durable de ventas. Cada batch del loop de
//     atribución inserta una fila por item; el agregado semanal es un SUM
//     sobre la ventana trailing de 7 días.
//   - Prune automático al abrir: filas de ventas fuera de la ventana no
//     aportan al agregado y solo engordan el archivo.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Items forjables (los escribe el scraper de la wiki)
CREATE TABLE IF NOT EXISTS forge_items (
    name           TEXT PRIMARY KEY,
    duration_hours REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS forge_recipes (
    item_name TEXT    NOT NULL REFERENCES forge_items(name) ON DELETE CASCADE,
    material  TEXT    NOT NULL,
    quantity  INTEGER NOT NULL,
    PRIMARY KEY (item_name, material)
);

CREATE TABLE IF NOT EXISTS forge_requirements (
    item_name   TEXT    NOT NULL REFERENCES forge_items(name) ON DELETE CASCADE,
    requirement TEXT    NOT NULL,
    level       INTEGER NOT NULL,
    PRIMARY KEY (item_name, requirement)
);

-- Ventas del AH atribuidas por el sale attribution loop, una fila por
-- (batch, item)
CREATE TABLE IF NOT EXISTS ah_sales (
    batch_id    TEXT     NOT NULL,
    item_name   TEXT     NOT NULL,
    quantity    INTEGER  NOT NULL,
    recorded_at DATETIME NOT NULL,
    PRIMARY KEY (batch_id, item_name)
);

CREATE INDEX IF NOT EXISTS idx_sales_at   ON ah_sales(recorded_at DESC);
CREATE INDEX IF NOT EXISTS idx_sales_item ON ah_sales(item_name);
`

// salesWindow es la ventana del agregado "weekly": 7 días.
const salesWindow = 7 * 24 * time.Hour

// SQLiteStorage implementa ports.RecipeStore y ports.SalesStore usando SQLite
// (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y poda las ventas fuera de la ventana semanal.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOldSales(context.Background())
	return s, nil
}

// GetForgeItems devuelve todos los items forjables indexados por nombre.
func (s *SQLiteStorage) GetForgeItems(ctx context.Context) (map[string]domain.ForgeItem, error) {
	items := make(map[string]domain.ForgeItem)

	rows, err := s.db.QueryContext(ctx, `SELECT name, duration_hours FROM forge_items`)
	if err != nil {
		return nil, fmt.Errorf("storage.GetForgeItems: query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.ForgeItem
		if err := rows.Scan(&item.Name, &item.DurationHours); err != nil {
			return nil, fmt.Errorf("storage.GetForgeItems: scan item: %w", err)
		}
		item.Recipe = make(map[string]int)
		item.Requirements = make(map[string]int)
		items[item.Name] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetForgeItems: %w", err)
	}

	if err := s.loadPairs(ctx, `SELECT item_name, material, quantity FROM forge_recipes`,
		func(item, key string, value int) {
			if it, ok := items[item]; ok {
				it.Recipe[key] = value
			}
		}); err != nil {
		return nil, fmt.Errorf("storage.GetForgeItems: load recipes: %w", err)
	}

	if err := s.loadPairs(ctx, `SELECT item_name, requirement, level FROM forge_requirements`,
		func(item, key string, value int) {
			if it, ok := items[item]; ok {
				it.Requirements[key] = value
			}
		}); err != nil {
		return nil, fmt.Errorf("storage.GetForgeItems: load requirements: %w", err)
	}

	return items, nil
}

// UpsertForgeItems reemplaza la tabla de items forjables completa, en una
// transacción. Es la semántica del scraper: cada scrape es el estado entero
// de la wiki, no un delta.
func (s *SQLiteStorage) UpsertForgeItems(ctx context.Context, items map[string]domain.ForgeItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.UpsertForgeItems: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM forge_items`); err != nil {
		return fmt.Errorf("storage.UpsertForgeItems: clear: %w", err)
	}
	// Sin FK enforcement por defecto en SQLite: limpiar las tablas hijas
	// explícitamente
	if _, err := tx.ExecContext(ctx, `DELETE FROM forge_recipes`); err != nil {
		return fmt.Errorf("storage.UpsertForgeItems: clear recipes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM forge_requirements`); err != nil {
		return fmt.Errorf("storage.UpsertForgeItems: clear requirements: %w", err)
	}

	for name, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO forge_items (name, duration_hours) VALUES (?, ?)`,
			name, item.DurationHours,
		); err != nil {
			return fmt.Errorf("storage.UpsertForgeItems: insert %s: %w", name, err)
		}
		for material, quantity := range item.Recipe {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO forge_recipes (item_name, material, quantity) VALUES (?, ?, ?)`,
				name, material, quantity,
			); err != nil {
				return fmt.Errorf("storage.UpsertForgeItems: insert recipe %s/%s: %w", name, material, err)
			}
		}
		for requirement, level := range item.Requirements {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO forge_requirements (item_name, requirement, level) VALUES (?, ?, ?)`,
				name, requirement, level,
			); err != nil {
				return fmt.Errorf("storage.UpsertForgeItems: insert requirement %s/%s: %w", name, requirement, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.UpsertForgeItems: commit: %w", err)
	}
	return nil
}

// RecordSales persiste un batch de ventas como filas (batch, item, cantidad).
func (s *SQLiteStorage) RecordSales(ctx context.Context, batch domain.SaleBatch) error {
	if len(batch.Sales) == 0 {
		return nil
	}

	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.RecordSales: begin tx: %w", err)
	}
	defer tx.Rollback()

	for item, quantity := range batch.Sales {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ah_sales (batch_id, item_name, quantity, recorded_at) VALUES (?, ?, ?, ?)`,
			batch.ID, item, quantity, now,
		); err != nil {
			return fmt.Errorf("storage.RecordSales: insert %s: %w", item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.RecordSales: commit: %w", err)
	}
	return nil
}

// GetWeeklySales devuelve item → total vendido dentro de la ventana semanal.
func (s *SQLiteStorage) GetWeeklySales(ctx context.Context) (map[string]int, error) {
	cutoff := time.Now().UTC().Add(-salesWindow)
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_name, SUM(quantity)
		FROM ah_sales
		WHERE recorded_at >= ?
		GROUP BY item_name
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("storage.GetWeeklySales: query: %w", err)
	}
	defer rows.Close()

	sales := make(map[string]int)
	for rows.Next() {
		var item string
		var total int
		if err := rows.Scan(&item, &total); err != nil {
			return nil, fmt.Errorf("storage.GetWeeklySales: scan row: %w", err)
		}
		sales[item] = total
	}
	return sales, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

// loadPairs ejecuta una query (item, key, valor int) y entrega cada fila al
// callback. Compartido entre recetas y requirements.
func (s *SQLiteStorage) loadPairs(ctx context.Context, query string, apply func(item, key string, value int)) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item, key string
		var value int
		if err := rows.Scan(&item, &key, &value); err != nil {
			return err
		}
		apply(item, key, value)
	}
	return rows.Err()
}

// pruneOldSales elimina filas de ventas fuera de la ventana semanal.
func (s *SQLiteStorage) pruneOldSales(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-salesWindow)
	s.db.ExecContext(ctx, `DELETE FROM ah_sales WHERE recorded_at < ?`, cutoff)
}
