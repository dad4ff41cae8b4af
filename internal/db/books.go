package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbarreto/hymnbook/internal/hymnal"
)

// Book is one stored extraction result.
type Book struct {
	ID          string
	SourceFile  string
	Title       sql.NullString
	TotalLines  int
	ExtractedAt time.Time
}

// SaveDocument stores a detected document and all of its songs in one
// transaction. Verse and chorus content is JSON-encoded per song.
func (m *Manager) SaveDocument(ctx context.Context, sourceFile string, doc *hymnal.Document) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bookID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO books (id, source_file, title, total_lines, extracted_at) VALUES (?, ?, ?, ?, ?)`,
		bookID, sourceFile, doc.Title, doc.Metadata.TotalLines,
		doc.Metadata.ExtractedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	for _, song := range doc.Songs {
		verses, err := json.Marshal(song.Verses)
		if err != nil {
			return fmt.Errorf("failed to encode verses: %w", err)
		}
		chorus, err := json.Marshal(song.Chorus)
		if err != nil {
			return fmt.Errorf("failed to encode chorus: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO songs (id, book_id, number, title, verses, chorus) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), bookID, song.Number, song.Title, string(verses), string(chorus))
		if err != nil {
			return fmt.Errorf("failed to insert song %s: %w", song.Number, err)
		}
	}

	return tx.Commit()
}

// ListBooks returns stored books, newest first.
func (m *Manager) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT id, source_file, title, total_lines, extracted_at FROM books ORDER BY extracted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var book Book
		var extractedAt string
		if err := rows.Scan(&book.ID, &book.SourceFile, &book.Title, &book.TotalLines, &extractedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		book.ExtractedAt, _ = time.Parse(time.RFC3339, extractedAt)
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return books, nil
}

// SongCount returns the number of songs stored for a book.
func (m *Manager) SongCount(ctx context.Context, bookID string) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM songs WHERE book_id = ?`, bookID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
