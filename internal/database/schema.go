package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL statements in dependency order.  users is owned by
// the upstream auth service; it is created here only so local databases
// have something to join against.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(120) NOT NULL,
		email      VARCHAR(190) NOT NULL UNIQUE,
		phone      VARCHAR(20)  NULL,
		role       ENUM('CUSTOMER','ADMIN') NOT NULL DEFAULT 'CUSTOMER',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS halls (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(120) NOT NULL,
		description TEXT NOT NULL,
		capacity    INT UNSIGNED NOT NULL,
		base_price  BIGINT NOT NULL,
		images      JSON NOT NULL,
		amenities   JSON NOT NULL,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_halls_active (is_active, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS food_items (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(120) NOT NULL,
		category     ENUM('Appetizer','Main Course','Dessert','Beverage') NOT NULL,
		price        BIGINT NOT NULL,
		is_veg       BOOLEAN NOT NULL DEFAULT TRUE,
		description  TEXT NULL,
		image        VARCHAR(500) NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_food_category (category)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS themes (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(120) NOT NULL,
		description  TEXT NULL,
		price        BIGINT NOT NULL,
		images       JSON NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_number   VARCHAR(20) NOT NULL,
		user_id          BIGINT UNSIGNED NOT NULL,
		hall_id          BIGINT UNSIGNED NULL,
		hall_name        VARCHAR(120) NOT NULL,
		event_date       DATE NOT NULL,
		time_slot        ENUM('Morning','Evening','Full Day') NOT NULL,
		guest_count      INT UNSIGNED NOT NULL,
		event_type       VARCHAR(64) NOT NULL,
		selected_foods   JSON NOT NULL,
		selected_theme   JSON NULL,
		total_amount     BIGINT NOT NULL,
		customer_details JSON NOT NULL,
		special_requests TEXT NULL,
		status           ENUM('PENDING','CONFIRMED','COMPLETED','CANCELLED') NOT NULL DEFAULT 'PENDING',
		payment_status   ENUM('PENDING','PAID','PARTIAL','FAILED','REFUNDED') NOT NULL DEFAULT 'PENDING',
		payment_id       VARCHAR(128) NULL,
		created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_booking_number (booking_number),
		KEY idx_bookings_slot (hall_id, event_date, status),
		KEY idx_bookings_user (user_id, created_at),
		CONSTRAINT fk_bookings_hall FOREIGN KEY (hall_id) REFERENCES halls (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS booking_status_history (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id     BIGINT UNSIGNED NOT NULL,
		status         ENUM('PENDING','CONFIRMED','COMPLETED','CANCELLED') NOT NULL,
		payment_status ENUM('PENDING','PAID','PARTIAL','FAILED','REFUNDED') NOT NULL,
		note           VARCHAR(600) NULL,
		changed_by     BIGINT UNSIGNED NULL,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_history_booking (booking_id, id),
		CONSTRAINT fk_history_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables.  Every statement is idempotent so it
// is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
