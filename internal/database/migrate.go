package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the application tables and their secondary indexes when
// they do not exist yet. The statements are idempotent so the server can
// run them on every startup.
//
// ticket_ledger and inventory_catalog share the same seat-record columns.
// They are separate tables on purpose: the ledger is the system of record
// for booked/cancelled seats, the catalog an independently refreshed list
// of available seats. Both pin a case-insensitive collation; the search
// predicates compare columns bare and rely on it.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			account_id      VARCHAR(64)  NOT NULL,
			display_name    VARCHAR(255) NOT NULL,
			normalized_name VARCHAR(255) NOT NULL,
			credential_hash VARCHAR(100) NOT NULL,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (account_id),
			UNIQUE KEY uniq_normalized_name (normalized_name)
		)`,
		`CREATE TABLE IF NOT EXISTS counters (
			name VARCHAR(64) NOT NULL,
			seq  BIGINT NULL,
			PRIMARY KEY (name)
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_ledger (
			id                BIGINT NOT NULL AUTO_INCREMENT,
			pnr               VARCHAR(16)  NOT NULL,
			flight_id         VARCHAR(16)  NOT NULL,
			seat_no           VARCHAR(8)   NOT NULL,
			src               VARCHAR(64)  NOT NULL,
			dst               VARCHAR(64)  NOT NULL,
			dep_time          DATETIME NULL,
			arr_time          DATETIME NULL,
			current_departure VARCHAR(64)  NULL,
			current_arrival   VARCHAR(64)  NULL,
			current_status    VARCHAR(32)  NULL,
			airline_name      VARCHAR(128) NOT NULL,
			seat_status       ENUM('Available','Booked','Cancelled') NOT NULL DEFAULT 'Booked',
			account_id        VARCHAR(64)  NULL,
			cancelled_at      DATETIME NULL,
			updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_ledger_account (account_id),
			KEY idx_ledger_status (seat_status),
			KEY idx_ledger_flight_seat (flight_id, seat_no)
		) CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci`,
		`CREATE TABLE IF NOT EXISTS inventory_catalog (
			id                BIGINT NOT NULL AUTO_INCREMENT,
			pnr               VARCHAR(16)  NOT NULL,
			flight_id         VARCHAR(16)  NOT NULL,
			seat_no           VARCHAR(8)   NOT NULL,
			src               VARCHAR(64)  NOT NULL,
			dst               VARCHAR(64)  NOT NULL,
			dep_time          DATETIME NULL,
			arr_time          DATETIME NULL,
			current_departure VARCHAR(64)  NULL,
			current_arrival   VARCHAR(64)  NULL,
			current_status    VARCHAR(32)  NULL,
			airline_name      VARCHAR(128) NOT NULL,
			seat_status       ENUM('Available','Booked','Cancelled') NOT NULL DEFAULT 'Available',
			account_id        VARCHAR(64)  NULL,
			cancelled_at      DATETIME NULL,
			updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_catalog_pnr (pnr),
			KEY idx_catalog_flight (flight_id),
			KEY idx_catalog_route (src, dst),
			KEY idx_catalog_airline (airline_name),
			KEY idx_catalog_status (seat_status)
		) CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id         BIGINT NOT NULL AUTO_INCREMENT,
			account_id VARCHAR(64) NOT NULL,
			token_hash CHAR(64)    NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uniq_token_hash (token_hash),
			KEY idx_tokens_account (account_id)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
