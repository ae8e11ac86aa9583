package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

// Compile-time interface assertion.
var _ Store = (*PostgresStore)(nil)

const uniqueViolation = "23505"

// PostgresStore implements Store over pgx. Identity and profile rows live
// in one database, so creation runs in a single transaction and deletion
// relies on the profiles FK being ON DELETE CASCADE.
type PostgresStore struct {
	db     *pgxpool.Pool
	tokens *token.Manager
}

// NewPostgresStore creates the Postgres-backed identity store.
func NewPostgresStore(db *pgxpool.Pool, tokens *token.Manager) *PostgresStore {
	return &PostgresStore{db: db, tokens: tokens}
}

const selectIdentityByIDSQL = `SELECT id, email, password_hash, created_at, updated_at
FROM identities WHERE id = $1`

const selectIdentityByEmailSQL = `SELECT id, email, password_hash, created_at, updated_at
FROM identities WHERE email = $1`

const insertIdentitySQL = `INSERT INTO identities (id, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, email, password_hash, created_at, updated_at`

const insertProfileSQL = `INSERT INTO profiles (id, user_id, full_name, email, role, created_by_admin)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *PostgresStore) UserFromToken(ctx context.Context, raw string) (domain.Identity, error) {
	std, _, err := s.tokens.Verify(raw)
	if err != nil {
		return domain.Identity{}, err
	}

	identity, err := s.getByID(ctx, std.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Token outlived its identity.
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("resolve token subject: %w", err)
	}
	return identity, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user NewUser) (domain.Identity, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("begin create user: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var created domain.Identity
	row := tx.QueryRow(ctx, insertIdentitySQL, uuid.NewString(), normalizeEmail(user.Email), string(hashed))
	if err := row.Scan(&created.ID, &created.Email, &created.PasswordHash, &created.CreatedAt, &created.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Identity{}, domain.ErrEmailTaken
		}
		return domain.Identity{}, fmt.Errorf("insert identity: %w", err)
	}

	// Profile creation rides the same transaction so no half-created
	// identity survives.
	if _, err := tx.Exec(ctx, insertProfileSQL,
		uuid.NewString(), created.ID, user.FullName, created.Email, string(user.Role), user.CreatedByAdmin,
	); err != nil {
		return domain.Identity{}, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Identity{}, fmt.Errorf("commit create user: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM identities WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	identity, err := s.getByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("load identity: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, userID, current, next string) error {
	identity, err := s.getByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("load identity: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(current)) != nil {
		return domain.ErrUnauthenticated
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.db.Exec(ctx,
		`UPDATE identities SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		userID, string(hashed),
	); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *PostgresStore) getByID(ctx context.Context, id string) (domain.Identity, error) {
	var identity domain.Identity
	row := s.db.QueryRow(ctx, selectIdentityByIDSQL, id)
	if err := row.Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.CreatedAt, &identity.UpdatedAt); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

func (s *PostgresStore) getByEmail(ctx context.Context, email string) (domain.Identity, error) {
	var identity domain.Identity
	row := s.db.QueryRow(ctx, selectIdentityByEmailSQL, email)
	if err := row.Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.CreatedAt, &identity.UpdatedAt); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
