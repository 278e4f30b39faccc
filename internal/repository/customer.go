package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/scb/customers/internal/model"
	"github.com/scb/customers/pkg/db/transactor"
)

// CustomerRepository provides access to customers persistent storage
type CustomerRepository interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int) (*model.Customer, error)
	FindByEmail(context.Context, string) (*model.Customer, error)
	ExistsByID(context.Context, int) (bool, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) error
	DeleteByID(context.Context, int) error
}

type postgresCustomerRepository struct {
	trx transactor.PgxTransactor
}

func NewPostgresCustomerRepository(trx transactor.PgxTransactor) CustomerRepository {
	return &postgresCustomerRepository{trx: trx}
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT id, first_name, last_name, email, phone FROM customers ORDER BY id"

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	q := "SELECT id, first_name, last_name, email, phone FROM customers WHERE id = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)
	return r.scanRow(row)
}

func (r *postgresCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	q := "SELECT id, first_name, last_name, email, phone FROM customers WHERE email = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, email)
	return r.scanRow(row)
}

func (r *postgresCustomerRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	q := "SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)"

	var exists bool
	if err := r.trx.Executor(ctx).QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(first_name, last_name, email, phone)
          VALUES($1, $2, $3, $4) RETURNING id`
	row := r.trx.Executor(ctx).QueryRow(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone)
	if err := row.Scan(&c.ID); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := `UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4
          WHERE id = $5`
	if _, err := r.trx.Executor(ctx).Exec(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone, c.ID); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id int) error {
	q := "DELETE FROM customers WHERE id = $1"
	if _, err := r.trx.Executor(ctx).Exec(ctx, q, id); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
