package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type VendorRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewVendorRepository(db *pgxpool.Pool, logger *zap.Logger) *VendorRepository {
	return &VendorRepository{db: db, logger: logger}
}

func (r *VendorRepository) Create(ctx context.Context, v *model.Vendor) error {
	query := `
        INSERT INTO vendors (project_id, name, category, contact_name, phone, email,
                             contract_amount, rating, bank_name, bank_branch, bank_account,
                             logo_file_id, contract_file_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		v.ProjectID, v.Name, v.Category, v.ContactName, v.Phone, v.Email,
		v.ContractAmount, v.Rating, v.BankName, v.BankBranch, v.BankAccount,
		v.LogoFileID, v.ContractFileID,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert vendor",
			zap.Int64("project_id", v.ProjectID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Vendor inserted", zap.Int64("vendor_id", v.ID))
	return nil
}

// GetByID returns (nil, nil) when the vendor does not exist.
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	query := `
        SELECT id, project_id, name, category, contact_name, phone, email,
               contract_amount, rating, bank_name, bank_branch, bank_account,
               logo_file_id, contract_file_id, created_at, updated_at
        FROM vendors
        WHERE id = $1
    `
	var v model.Vendor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ProjectID, &v.Name, &v.Category, &v.ContactName, &v.Phone, &v.Email,
		&v.ContractAmount, &v.Rating, &v.BankName, &v.BankBranch, &v.BankAccount,
		&v.LogoFileID, &v.ContractFileID, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) Update(ctx context.Context, v *model.Vendor) error {
	query := `
        UPDATE vendors
        SET name = $1, category = $2, contact_name = $3, phone = $4, email = $5,
            contract_amount = $6, rating = $7, bank_name = $8, bank_branch = $9,
            bank_account = $10, logo_file_id = $11, contract_file_id = $12, updated_at = NOW()
        WHERE id = $13
    `
	_, err := r.db.Exec(ctx, query,
		v.Name, v.Category, v.ContactName, v.Phone, v.Email,
		v.ContractAmount, v.Rating, v.BankName, v.BankBranch,
		v.BankAccount, v.LogoFileID, v.ContractFileID, v.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update vendor", zap.Int64("vendor_id", v.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete vendor", zap.Int64("vendor_id", id), zap.Error(err))
		return err
	}
	r.logger.Info("Vendor deleted", zap.Int64("vendor_id", id))
	return nil
}

func (r *VendorRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Vendor, error) {
	query := `
        SELECT id, project_id, name, category, contact_name, phone, email,
               contract_amount, rating, bank_name, bank_branch, bank_account,
               logo_file_id, contract_file_id, created_at, updated_at
        FROM vendors
        WHERE project_id = $1
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query vendors", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	vendors := []model.Vendor{}
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(
			&v.ID, &v.ProjectID, &v.Name, &v.Category, &v.ContactName, &v.Phone, &v.Email,
			&v.ContractAmount, &v.Rating, &v.BankName, &v.BankBranch, &v.BankAccount,
			&v.LogoFileID, &v.ContractFileID, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE project_id = $1`, projectID)
	return err
}
