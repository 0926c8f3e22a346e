package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create user with duplicate email: %s", user.Email)
			return nil, fmt.Errorf("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Failed to create user '%s': %v", user.Email, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	r.log.Infof("User created successfully with ID: %d, Email: %s", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(id int) (*domain.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE email = $1`
	return r.scanOne(r.db.QueryRow(query, email), fmt.Sprintf("email '%s'", email))
}

func (r *postgresUserRepository) scanOne(row *sql.Row, ref string) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with %s not found", ref)
			return nil, fmt.Errorf("user with %s: %w", ref, domain.ErrUserNotFound)
		}
		r.log.Errorf("Failed to get user by %s: %v", ref, err)
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) UpdateUser(id int, user *domain.User) (*domain.User, error) {
	query := `
        UPDATE users
        SET name = $1, email = $2, password_hash = $3
        WHERE id = $4
        RETURNING id, name, email, password_hash, created_at`

	updated := &domain.User{}
	err := r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash, id).Scan(
		&updated.ID, &updated.Name, &updated.Email, &updated.PasswordHash, &updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with id %d not found for update", id)
			return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrUserNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to update user %d to duplicate email '%s'", id, user.Email)
			return nil, fmt.Errorf("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Failed to update user %d: %v", id, err)
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	r.log.Infof("User updated successfully: ID %d", updated.ID)
	return updated, nil
}

func (r *postgresUserRepository) DeleteUser(id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Failed to delete user %d: %v", id, err)
		return fmt.Errorf("could not delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting user %d: %v", id, err)
		return fmt.Errorf("could not confirm user deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent user %d", id)
		return fmt.Errorf("user with id %d: %w", id, domain.ErrUserNotFound)
	}
	r.log.Infof("User deleted successfully: ID %d", id)
	return nil
}

func (r *postgresUserRepository) ListUsers() ([]domain.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list users: %v", err)
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			r.log.Errorf("Failed to scan user row: %v", err)
			return nil, fmt.Errorf("error scanning user data: %w", err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during users list iteration: %v", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	r.log.Infof("Retrieved %d users", len(users))
	return users, nil
}
