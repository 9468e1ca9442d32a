package postgres

// SQL queries for pour event storage and summary reductions

const (
	// queryInsertPour inserts a pour event with eventId idempotency.
	// The unique constraint on event_id makes the conditional insert a
	// single atomic operation; there is no separate existence check.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for
	// duplicates. recorded_at is assigned by the database.
	queryInsertPour = `
		INSERT INTO pours (
			event_id, device_id, location_id, product_id,
			started_at, ended_at, volume_ml
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING id, recorded_at
	`

	// queryVolumeByProduct reduces one device's events inside the
	// inclusive [from, to] window to per-product totals. The secondary
	// ascending key sort keeps equal-volume ordering deterministic.
	// Served by the covering index on
	// (device_id, started_at, product_id, location_id, volume_ml).
	queryVolumeByProduct = `
		SELECT product_id, SUM(volume_ml)::bigint AS total_volume_ml, COUNT(*) AS total_pours
		FROM pours
		WHERE device_id = $1
		  AND started_at >= $2
		  AND started_at <= $3
		GROUP BY product_id
		ORDER BY total_volume_ml DESC, product_id ASC
	`

	// queryVolumeByLocation is the per-location counterpart of
	// queryVolumeByProduct over the same filtered row set.
	queryVolumeByLocation = `
		SELECT location_id, SUM(volume_ml)::bigint AS total_volume_ml, COUNT(*) AS total_pours
		FROM pours
		WHERE device_id = $1
		  AND started_at >= $2
		  AND started_at <= $3
		GROUP BY location_id
		ORDER BY total_volume_ml DESC, location_id ASC
	`
)
