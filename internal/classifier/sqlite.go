
package classifier

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE model_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE features (
	idx  INTEGER PRIMARY KEY,
	term TEXT NOT NULL UNIQUE,
	idf  REAL NOT NULL,
	coef REAL NOT NULL
);`

// ReadSQLite loads an artifact stored in the model_meta/features tables.
func ReadSQLite(path string) (*Artifact, error) {
	// sql.Open would silently create an empty database
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnavailable, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrArtifactUnavailable, path, err)
	}
	defer db.Close()

	a, err := readMeta(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactUnavailable, path, err)
	}
	if err := readFeatures(db, a); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactUnavailable, path, err)
	}
	return a, nil
}

func readMeta(db *sql.DB) (*Artifact, error) {
	rows, err := db.Query("SELECT key, value FROM model_meta")
	if err != nil {
		return nil, fmt.Errorf("reading model_meta: %w", err)
	}
	defer rows.Close()

	a := &Artifact{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning model_meta: %w", err)
		}
		switch k {
		case "version":
			a.Version, err = strconv.Atoi(v)
		case "intercept":
			a.Intercept, err = strconv.ParseFloat(v, 64)
		case "ngram_min":
			a.NGramMin, err = strconv.Atoi(v)
		case "ngram_max":
			a.NGramMax, err = strconv.Atoi(v)
		case "stop_words":
			a.StopWords = v
		}
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", k, v, err)
		}
	}
	return a, rows.Err()
}

func readFeatures(db *sql.DB, a *Artifact) error {
	rows, err := db.Query("SELECT idx, term, idf, coef FROM features ORDER BY idx")
	if err != nil {
		return fmt.Errorf("reading features: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx       int
			term      string
			idf, coef float64
		)
		if err := rows.Scan(&idx, &term, &idf, &coef); err != nil {
			return fmt.Errorf("scanning features: %w", err)
		}
		if idx != len(a.Features) {
			return fmt.Errorf("feature index %d out of sequence, expected %d", idx, len(a.Features))
		}
		a.Features = append(a.Features, term)
		a.IDF = append(a.IDF, idf)
		a.Coefficients = append(a.Coefficients, coef)
	}
	return rows.Err()
}

// SaveSQLite writes the artifact to a fresh SQLite file, replacing any
// existing file at path.
func SaveSQLite(path string, a Artifact) (retErr error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error replacing %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	lo, hi := a.ngramRange()
	meta := map[string]string{
		"version":    strconv.Itoa(ArtifactVersion),
		"intercept":  strconv.FormatFloat(a.Intercept, 'g', -1, 64),
		"ngram_min":  strconv.Itoa(lo),
		"ngram_max":  strconv.Itoa(hi),
		"stop_words": a.StopWords,
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO model_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("error writing meta %s: %w", k, err)
		}
	}

	stmt, err := tx.Prepare("INSERT INTO features (idx, term, idf, coef) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("error preparing feature insert: %w", err)
	}
	defer stmt.Close()

	for i, term := range a.Features {
		if _, err := stmt.Exec(i, term, a.IDF[i], a.Coefficients[i]); err != nil {
			return fmt.Errorf("error writing feature %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing artifact: %w", err)
	}
	return nil
}
