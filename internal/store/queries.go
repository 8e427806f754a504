package store

const (
	createRecordsTableQuery = `
		CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (kind, id)
		);
		CREATE INDEX IF NOT EXISTS idx_records_data ON records USING GIN (data jsonb_path_ops);
	`

	insertRecordQuery = `
		INSERT INTO records (kind, id, data)
		VALUES ($1, $2, $3::jsonb)
	`

	getRecordQuery = `
		SELECT data
		FROM records
		WHERE kind = $1 AND id = $2
	`

	replaceRecordQuery = `
		UPDATE records
		SET data = $3::jsonb
		WHERE kind = $1 AND id = $2
	`

	// single statement so concurrent increments serialize on the row lock
	incrementRecordQuery = `
		UPDATE records
		SET data = jsonb_set(
			data,
			ARRAY[$3::text],
			to_jsonb(COALESCE((data ->> $3::text)::numeric, 0) + $4::int)
		) || jsonb_build_object('updated_date', $5::text)
		WHERE kind = $1 AND id = $2
		RETURNING data
	`

	deleteRecordQuery = `DELETE FROM records WHERE kind = $1 AND id = $2`

	clearRecordsQuery = `DELETE FROM records WHERE kind = $1`

	// missing fields sort last in both directions; id breaks ties
	findRecordsAscQuery = `
		SELECT data
		FROM records
		WHERE kind = $1 AND data @> $2::jsonb
		ORDER BY data -> $3 ASC NULLS LAST, id ASC
		LIMIT $4
	`

	findRecordsDescQuery = `
		SELECT data
		FROM records
		WHERE kind = $1 AND data @> $2::jsonb
		ORDER BY data -> $3 DESC NULLS LAST, id ASC
		LIMIT $4
	`
)
