package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type PaymentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPaymentRepository(db *pgxpool.Pool, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	r.logger.Debug("Inserting payment",
		zap.Int64("project_id", p.ProjectID),
		zap.Int64("vendor_id", p.VendorID),
		zap.Float64("amount", p.Amount),
		zap.String("status", string(p.Status)),
	)
	query := `
        INSERT INTO payments (project_id, vendor_id, amount, method, status,
                              pay_date, estimated_date, invoice_file_id, receipt_file_id,
                              description, progress_percent, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		p.ProjectID, p.VendorID, p.Amount, p.Method, p.Status,
		p.Date, p.EstimatedDate, p.InvoiceFileID, p.ReceiptFileID,
		p.Description, p.ProgressPercent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert payment",
			zap.Int64("vendor_id", p.VendorID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Payment inserted", zap.Int64("payment_id", p.ID))
	return nil
}

// GetByID returns (nil, nil) when the payment does not exist.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	query := `
        SELECT id, project_id, vendor_id, amount, method, status,
               pay_date, estimated_date, invoice_file_id, receipt_file_id,
               description, progress_percent, created_at, updated_at
        FROM payments
        WHERE id = $1
    `
	var (
		p         model.Payment
		rawStatus string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ProjectID, &p.VendorID, &p.Amount, &p.Method, &rawStatus,
		&p.Date, &p.EstimatedDate, &p.InvoiceFileID, &p.ReceiptFileID,
		&p.Description, &p.ProgressPercent, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Status = model.ParsePaymentStatus(rawStatus)
	return &p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *model.Payment) error {
	query := `
        UPDATE payments
        SET amount = $1, method = $2, status = $3, pay_date = $4, estimated_date = $5,
            invoice_file_id = $6, receipt_file_id = $7, description = $8,
            progress_percent = $9, updated_at = NOW()
        WHERE id = $10
    `
	_, err := r.db.Exec(ctx, query,
		p.Amount, p.Method, p.Status, p.Date, p.EstimatedDate,
		p.InvoiceFileID, p.ReceiptFileID, p.Description,
		p.ProgressPercent, p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update payment", zap.Int64("payment_id", p.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete payment", zap.Int64("payment_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *PaymentRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Payment, error) {
	query := `
        SELECT id, project_id, vendor_id, amount, method, status,
               pay_date, estimated_date, invoice_file_id, receipt_file_id,
               description, progress_percent, created_at, updated_at
        FROM payments
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, projectID)
}

func (r *PaymentRepository) ListByVendor(ctx context.Context, vendorID int64) ([]model.Payment, error) {
	query := `
        SELECT id, project_id, vendor_id, amount, method, status,
               pay_date, estimated_date, invoice_file_id, receipt_file_id,
               description, progress_percent, created_at, updated_at
        FROM payments
        WHERE vendor_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, vendorID)
}

func (r *PaymentRepository) list(ctx context.Context, query string, arg int64) ([]model.Payment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error("Failed to query payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var (
			p         model.Payment
			rawStatus string
		)
		if err := rows.Scan(
			&p.ID, &p.ProjectID, &p.VendorID, &p.Amount, &p.Method, &rawStatus,
			&p.Date, &p.EstimatedDate, &p.InvoiceFileID, &p.ReceiptFileID,
			&p.Description, &p.ProgressPercent, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Status = model.ParsePaymentStatus(rawStatus)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE project_id = $1`, projectID)
	return err
}
