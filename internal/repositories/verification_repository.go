package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Juan-Devgo/Clothes/internal/models"
)

// VerificationRepository stores pending-verification records server-side,
// keyed by the opaque token the browser cookie carries. Attempt counting
// lives here so the 3-strikes cap holds across tabs and devices.
type VerificationRepository interface {
	Create(pv *models.PendingVerification) (int64, error)
	GetByToken(token string) (*models.PendingVerification, error)
	IncrementAttempts(id int64) (int, error)
	SetConfirmedCode(id int64, code string) error
	Delete(id int64) error
	DeleteExpired() (int64, error)
}

type verificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) VerificationRepository {
	return &verificationRepository{DB: db}
}

func (r *verificationRepository) Create(pv *models.PendingVerification) (int64, error) {
	const q = `
		INSERT INTO pending_verifications
			(token, type, email, username, password_enc, code_hash, attempts, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)
		RETURNING id
	`
	if pv.CreatedAt.IsZero() {
		pv.CreatedAt = time.Now()
	}
	if err := r.DB.QueryRow(q,
		pv.Token, pv.Type, pv.Email, pv.Username, pv.PasswordEnc, pv.CodeHash, pv.CreatedAt, pv.ExpiresAt,
	).Scan(&pv.ID); err != nil {
		return 0, fmt.Errorf("create pending verification: %w", err)
	}
	return pv.ID, nil
}

// GetByToken treats expired rows as absent.
func (r *verificationRepository) GetByToken(token string) (*models.PendingVerification, error) {
	const q = `
		SELECT id, token, type, email, username, password_enc, code_hash, confirmed_code, attempts, created_at, expires_at
		FROM pending_verifications
		WHERE token = $1 AND expires_at > NOW()
	`
	row := r.DB.QueryRow(q, token)

	var pv models.PendingVerification
	var username, passwordEnc, codeHash, confirmedCode sql.NullString
	if err := row.Scan(
		&pv.ID, &pv.Token, &pv.Type, &pv.Email, &username, &passwordEnc,
		&codeHash, &confirmedCode, &pv.Attempts, &pv.CreatedAt, &pv.ExpiresAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending verification: %w", err)
	}
	pv.Username = username.String
	pv.PasswordEnc = passwordEnc.String
	pv.CodeHash = codeHash.String
	pv.ConfirmedCode = confirmedCode.String
	return &pv, nil
}

func (r *verificationRepository) IncrementAttempts(id int64) (int, error) {
	const q = `
		UPDATE pending_verifications
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *verificationRepository) SetConfirmedCode(id int64, code string) error {
	const q = `
		UPDATE pending_verifications SET confirmed_code = $1 WHERE id = $2
	`
	if _, err := r.DB.Exec(q, code, id); err != nil {
		return fmt.Errorf("set confirmed code: %w", err)
	}
	return nil
}

func (r *verificationRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM pending_verifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete pending verification: %w", err)
	}
	return nil
}

// DeleteExpired reaps rows orphaned by abandoned flows.
func (r *verificationRepository) DeleteExpired() (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM pending_verifications WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired verifications: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
