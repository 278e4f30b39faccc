package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/scb/customers/internal/errors"
	"github.com/scb/customers/internal/model"
	rpsMocks "github.com/scb/customers/internal/repository/mocks"
	trxMocks "github.com/scb/customers/pkg/db/transactor/mocks"
)

type customerTestData struct {
	ctx      context.Context
	email    string
	phone    string
	customer *model.Customer
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc     CustomerService
	customerRpsMock *rpsMocks.CustomerRepository
	trxMock         *trxMocks.Transactor
	testData        *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	email := "pri@x.com"
	phone := "111"

	s.testData = &customerTestData{
		ctx:   context.Background(),
		email: email,
		phone: phone,
		customer: &model.Customer{
			ID:        1,
			FirstName: "Priya",
			LastName:  "B",
			Email:     &email,
			Phone:     &phone,
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.trxMock = trxMocks.NewTransactor(t)
	s.customerSvc = NewCustomerService(s.trxMock, s.customerRpsMock)
}

func (s *customerServiceTestSuite) expectTransaction() {
	ctx := s.testData.ctx
	s.trxMock.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
		Return(func(txCtx context.Context, txFunc func(context.Context) error) error {
			return txFunc(txCtx)
		}).Once()
}

func (s *customerServiceTestSuite) TestFindByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("customer must be found")
	{
		c, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c, "found customer must be returned")
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByID", ctx, 999).Return(nil, nil).Once()

	s.T().Log("customer is missing, typed not found error must be raised")
	{
		_, err := s.customerSvc.FindByID(ctx, 999)
		s.Assert().Error(err, "error must be raised")

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
		s.Assert().Contains(err.Error(), "999", "error message must name the id")
	}
}

func (s *customerServiceTestSuite) TestFindAllSuccessfully() {
	ctx := s.testData.ctx
	customers := []*model.Customer{s.testData.customer}

	s.customerRpsMock.On("FindAll", ctx).Return(customers, nil).Once()

	s.T().Log("customers must be returned from storage without filtering")
	{
		found, err := s.customerSvc.FindAll(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Len(found, 1, "single customer must be returned")
	}
}

func (s *customerServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.testData.ctx
	email := s.testData.email
	phone := s.testData.phone

	newCustomer := &model.Customer{FirstName: "Priya", LastName: "B", Email: &email, Phone: &phone}

	s.expectTransaction()
	s.customerRpsMock.On("FindByEmail", ctx, email).Return(nil, nil).Once()
	s.customerRpsMock.On("Create", ctx, newCustomer).Run(func(args mock.Arguments) {
		c := args.Get(1).(*model.Customer)
		c.ID = 1
	}).Return(nil).Once()

	s.T().Log("customer must be created with id assigned by storage")
	{
		c, err := s.customerSvc.Create(ctx, newCustomer)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(1, c.ID, "generated id must be populated")
		s.Assert().Equal("Priya", c.FirstName, "first name must stay unchanged")
	}
}

func (s *customerServiceTestSuite) TestCreateWithoutEmail() {
	ctx := s.testData.ctx

	newCustomer := &model.Customer{FirstName: "Sri", LastName: "D"}

	s.expectTransaction()
	s.customerRpsMock.On("Create", ctx, newCustomer).Return(nil).Once()

	s.T().Log("email is absent, so uniqueness check must be skipped")
	{
		_, err := s.customerSvc.Create(ctx, newCustomer)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByEmail", ctx, mock.AnythingOfType("string"))
	}
}

func (s *customerServiceTestSuite) TestCreateEmailInUse() {
	ctx := s.testData.ctx
	email := s.testData.email
	phone := "222"

	duplicate := &model.Customer{FirstName: "Shreya", LastName: "C", Email: &email, Phone: &phone}

	s.expectTransaction()
	s.customerRpsMock.On("FindByEmail", ctx, email).Return(s.testData.customer, nil).Once()

	s.T().Log("email is already registered, conflict must be raised and nothing persisted")
	{
		_, err := s.customerSvc.Create(ctx, duplicate)
		s.Assert().Error(err, "error must be raised")

		var conflictErr *apperrors.ConflictErr
		s.Assert().ErrorAs(err, &conflictErr, "error must be conflict error")
		s.customerRpsMock.AssertNotCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestCreateStorageFailed() {
	ctx := s.testData.ctx
	email := s.testData.email

	newCustomer := &model.Customer{FirstName: "Priya", LastName: "B", Email: &email}
	storageErr := errors.New("storage unavailable")

	s.expectTransaction()
	s.customerRpsMock.On("FindByEmail", ctx, email).Return(nil, storageErr).Once()

	s.T().Log("storage raised error, it must be propagated as-is")
	{
		_, err := s.customerSvc.Create(ctx, newCustomer)
		s.Assert().ErrorIs(err, storageErr, "storage error must be raised up")
	}
}

func (s *customerServiceTestSuite) TestUpdateSuccessfully() {
	ctx := s.testData.ctx

	stored := *s.testData.customer
	newEmail := "priya.b@x.com"
	newPhone := "333"
	fields := &model.Customer{FirstName: "Priyanka", LastName: "Bora", Email: &newEmail, Phone: &newPhone}

	s.customerRpsMock.On("FindByID", ctx, stored.ID).Return(&stored, nil).Once()
	s.customerRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("fields must be overwritten, id must be preserved")
	{
		c, err := s.customerSvc.Update(ctx, stored.ID, fields)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(1, c.ID, "id must not be reassigned")
		s.Assert().Equal("Priyanka", c.FirstName, "first name must be overwritten")
		s.Assert().Equal("Bora", c.LastName, "last name must be overwritten")
		s.Assert().Equal(&newEmail, c.Email, "email must be overwritten")
		s.Assert().Equal(&newPhone, c.Phone, "phone must be overwritten")
	}
}

func (s *customerServiceTestSuite) TestUpdateNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByID", ctx, 999).Return(nil, nil).Once()

	s.T().Log("customer is missing, nothing must be persisted")
	{
		_, err := s.customerSvc.Update(ctx, 999, s.testData.customer)
		s.Assert().Error(err, "error must be raised")

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("ExistsByID", ctx, customer.ID).Return(true, nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()

	s.T().Log("existing customer must be deleted")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertCalled(s.T(), "DeleteByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("ExistsByID", ctx, 999).Return(false, nil).Once()

	s.T().Log("customer is missing, delete must not be attempted")
	{
		err := s.customerSvc.DeleteByID(ctx, 999)
		s.Assert().Error(err, "error must be raised")

		var notFoundErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
		s.customerRpsMock.AssertNotCalled(s.T(), "DeleteByID", ctx, 999)
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
