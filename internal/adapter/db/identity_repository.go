package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/jmoiron/sqlx"
)

const organizationColumns = `id, name, parent_id, created_at, updated_at`

const (
	insertOrganizationQuery = `INSERT INTO organizations (` + organizationColumns + `)
VALUES (:id, :name, :parent_id, :created_at, :updated_at)`
	findOrganizationByIDQuery   = `SELECT ` + organizationColumns + ` FROM organizations WHERE id = ?`
	findOrganizationByNameQuery = `SELECT ` + organizationColumns + ` FROM organizations WHERE name = ? ORDER BY created_at, id LIMIT 1`
	findFirstRootQuery          = `SELECT ` + organizationColumns + ` FROM organizations WHERE parent_id IS NULL ORDER BY created_at, id LIMIT 1`
	listChildrenQuery           = `SELECT ` + organizationColumns + ` FROM organizations WHERE parent_id = ? ORDER BY created_at, id`
	deleteOrganizationQuery     = `DELETE FROM organizations WHERE id = ?`
)

const userColumns = `id, email, name, password_hash, role, organization_id, created_at, updated_at`

const (
	insertUserQuery = `INSERT INTO users (` + userColumns + `)
VALUES (:id, :email, :name, :password_hash, :role, :organization_id, :created_at, :updated_at)`
	findUserByIDQuery            = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	findUserByEmailQuery         = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	listUsersByOrganizationQuery = `SELECT ` + userColumns + ` FROM users WHERE organization_id = ? ORDER BY created_at, id`
)

type organizationRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	ParentID  sql.NullString `db:"parent_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type userRow struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	Name           string    `db:"name"`
	PasswordHash   string    `db:"password_hash"`
	Role           string    `db:"role"`
	OrganizationID string    `db:"organization_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type OrganizationRepository struct {
	db *sqlx.DB
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)

func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	row := organizationRow{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
	if org.ParentID != nil {
		row.ParentID = sql.NullString{String: *org.ParentID, Valid: true}
	}
	if _, err := r.db.NamedExecContext(ctx, insertOrganizationQuery, row); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (domain.Organization, error) {
	return r.get(ctx, findOrganizationByIDQuery, id)
}

func (r *OrganizationRepository) FindByName(ctx context.Context, name string) (domain.Organization, error) {
	return r.get(ctx, findOrganizationByNameQuery, name)
}

func (r *OrganizationRepository) FindFirstRoot(ctx context.Context) (domain.Organization, error) {
	return r.get(ctx, findFirstRootQuery)
}

func (r *OrganizationRepository) ListChildren(ctx context.Context, parentID string) ([]domain.Organization, error) {
	var rows []organizationRow
	if err := r.db.SelectContext(ctx, &rows, listChildrenQuery, parentID); err != nil {
		return nil, err
	}
	orgs := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		orgs = append(orgs, mapOrganizationRow(row))
	}
	return orgs, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, deleteOrganizationQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

func (r *OrganizationRepository) get(ctx context.Context, query string, args ...any) (domain.Organization, error) {
	var row organizationRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Organization{}, domain.ErrOrganizationNotFound
		}
		return domain.Organization{}, err
	}
	return mapOrganizationRow(row), nil
}

func mapOrganizationRow(row organizationRow) domain.Organization {
	org := domain.Organization{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.ParentID.Valid {
		value := row.ParentID.String
		org.ParentID = &value
	}
	return org
}

type UserRepository struct {
	db *sqlx.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userRow{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, row); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, findUserByIDQuery, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, findUserByEmailQuery, email)
}

func (r *UserRepository) ListByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, listUsersByOrganizationQuery, orgID); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRow(row))
	}
	return users, nil
}

func (r *UserRepository) get(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRow(row), nil
}

func mapUserRow(row userRow) domain.User {
	return domain.User{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		PasswordHash:   row.PasswordHash,
		Role:           domain.Role(row.Role),
		OrganizationID: row.OrganizationID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
