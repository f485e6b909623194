package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReportStore defines the interface for verification report persistence.
type ReportStore interface {
	// Insert persists one verification report.
	Insert(ctx context.Context, report *Report) error
	// GetByID gets a report by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*Report, error)
	// ListBySection returns reports for a section, newest first.
	ListBySection(ctx context.Context, sectionName string) ([]Report, error)
}

// ReportRepo provides methods for report operations.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Insert persists one verification report.
func (r *ReportRepo) Insert(ctx context.Context, report *Report) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reports (id, section_name, confidence, verified, payload) VALUES (?, ?, ?, ?, ?)",
		report.ID, report.SectionName, report.Confidence, report.Verified, report.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetByID gets a report by its ID.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*Report, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, section_name, confidence, verified, payload, created_at FROM reports WHERE id = ?",
		id,
	)
	var report Report
	err := row.Scan(&report.ID, &report.SectionName, &report.Confidence, &report.Verified, &report.Payload, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListBySection returns reports for a section, newest first.
func (r *ReportRepo) ListBySection(ctx context.Context, sectionName string) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, section_name, confidence, verified, payload, created_at FROM reports WHERE section_name = ? ORDER BY created_at DESC",
		sectionName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var reports []Report
	for rows.Next() {
		var report Report
		if err := rows.Scan(&report.ID, &report.SectionName, &report.Confidence, &report.Verified, &report.Payload, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
