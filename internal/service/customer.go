package service

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	apperrors "github.com/scb/customers/internal/errors"
	"github.com/scb/customers/internal/model"
	"github.com/scb/customers/internal/repository"
	"github.com/scb/customers/pkg/db/transactor"
)

// SQLSTATE for unique constraint violation
const uniqueViolationCode = "23505"

// CustomerService exposes business operations over customers
type CustomerService interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int) (*model.Customer, error)
	Create(context.Context, *model.Customer) (*model.Customer, error)
	Update(context.Context, int, *model.Customer) (*model.Customer, error)
	DeleteByID(context.Context, int) error
}

type customerService struct {
	trx          transactor.Transactor
	customerRepo repository.CustomerRepository
}

func NewCustomerService(trx transactor.Transactor, customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{trx: trx, customerRepo: customerRepo}
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *customerService) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, apperrors.NewCustomerNotFoundErr(id)
	}
	return c, nil
}

// Create persists new customer. The email check and the insert run within a
// single transaction; the unique index on email stays the final authority for
// inserts racing between the check and the write.
func (s *customerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if c.Email != nil {
			existing, err := s.customerRepo.FindByEmail(ctx, *c.Email)
			if err != nil {
				return err
			}

			if existing != nil {
				return apperrors.NewEmailInUseErr(*c.Email)
			}
		}
		return s.customerRepo.Create(ctx, c)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if c.Email != nil && errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewEmailInUseErr(*c.Email)
		}
		return nil, err
	}
	return c, nil
}

// Update overwrites firstName, lastName, email and phone of the existing
// customer, id is preserved. Email uniqueness is not re-checked here, unlike
// Create - the unique index still rejects a duplicate at the storage level.
func (s *customerService) Update(ctx context.Context, id int, c *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, apperrors.NewCustomerNotFoundErr(id)
	}

	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Email = c.Email
	existing.Phone = c.Phone

	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id int) error {
	exists, err := s.customerRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return apperrors.NewCustomerNotFoundErr(id)
	}
	return s.customerRepo.DeleteByID(ctx, id)
}
