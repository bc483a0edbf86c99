package profile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Repository handles profile data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const profileColumns = `id, name, duration, agent_price, selling_price, router_profile, active, voucher_code_length, created_at`

// scanProfile scans one row, normalizing the active flag at the storage
// boundary. Rows migrated from the legacy MySQL export may carry the flag
// as tinyint or text ("1", "true"), so it is read as raw bytes rather
// than a bool.
func scanProfile(scan func(dest ...interface{}) error) (*Profile, error) {
	p := &Profile{}
	var active []byte
	if err := scan(
		&p.ID,
		&p.Name,
		&p.Duration,
		&p.AgentPrice,
		&p.SellingPrice,
		&p.RouterProfile,
		&active,
		&p.CodeLength,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Active = parseActiveFlag(active)
	p.CodeLength = ClampCodeLength(p.CodeLength)
	return p, nil
}

// parseActiveFlag accepts the representations found in legacy data:
// 1, true, "1", "t", "true" are active; everything else is not.
func parseActiveFlag(raw []byte) bool {
	switch strings.ToLower(strings.TrimSpace(string(raw))) {
	case "1", "t", "true":
		return true
	default:
		return false
	}
}

// Create inserts a new voucher profile
func (r *Repository) Create(ctx context.Context, req *CreateProfileRequest) (*Profile, error) {
	query := `
		INSERT INTO voucher_profiles (name, duration, agent_price, selling_price, router_profile, active, voucher_code_length)
		VALUES ($1, $2, $3, $4, $5, true, $6)
		RETURNING ` + profileColumns

	row := r.db.QueryRowContext(ctx, query,
		req.Name, req.Duration, req.AgentPrice, req.SellingPrice, req.RouterProfile,
		ClampCodeLength(req.CodeLength),
	)
	p, err := scanProfile(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

// GetByID retrieves a profile by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM voucher_profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetByName retrieves a profile by its unique name
func (r *Repository) GetByName(ctx context.Context, name string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM voucher_profiles WHERE name = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, name).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by name: %w", err)
	}
	return p, nil
}

// ListActive retrieves active profiles ordered by agent price ascending
func (r *Repository) ListActive(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM voucher_profiles
		WHERE active::text IN ('1', 't', 'true')
		ORDER BY agent_price ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// Update modifies an existing profile; nil fields are left unchanged
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateProfileRequest) (*Profile, error) {
	var codeLength *int
	if req.CodeLength != nil {
		clamped := ClampCodeLength(*req.CodeLength)
		codeLength = &clamped
	}

	query := `
		UPDATE voucher_profiles
		SET duration = COALESCE($2, duration),
		    agent_price = COALESCE($3, agent_price),
		    selling_price = COALESCE($4, selling_price),
		    router_profile = COALESCE($5, router_profile),
		    voucher_code_length = COALESCE($6, voucher_code_length)
		WHERE id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRowContext(ctx, query, id,
		req.Duration, req.AgentPrice, req.SellingPrice, req.RouterProfile, codeLength,
	)
	p, err := scanProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

// ToggleActive flips the active flag and returns the updated profile
func (r *Repository) ToggleActive(ctx context.Context, id int64) (*Profile, error) {
	query := `
		UPDATE voucher_profiles
		SET active = NOT (active::text IN ('1', 't', 'true'))
		WHERE id = $1
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to toggle profile: %w", err)
	}
	return p, nil
}

// Delete removes a profile. Issued vouchers keep their denormalized copy
// of the profile fields, so deletion never touches voucher history.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM voucher_profiles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
