package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juan-Devgo/Clothes/internal/cms"
	"github.com/Juan-Devgo/Clothes/internal/models"
)

func newCustomerService(t *testing.T, fc *fakeCMS) *CustomerService {
	t.Helper()
	client := fc.start(t)
	return NewCustomerService(client, NewAccountService(client))
}

func validCustomer() models.CreateCustomerRequest {
	return models.CreateCustomerRequest{
		FirstName: "María",
		LastName:  "Muñoz",
		Email:     "maria@example.com",
		Phone:     "3001234567",
	}
}

func TestCustomerCreateWithAccount(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers, http.StatusOK, `{"data":{"id":1,"documentId":"cust-1","first_name":"María"}}`)
	fc.handle(cms.PathAccountStates, http.StatusOK, `{"data":[{"id":1,"documentId":"state-free","name":"FREE"}]}`)
	fc.handle(cms.PathAccounts, http.StatusOK, `{"data":{"id":9,"documentId":"acct-9"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Create(context.Background(), "jwt", validCustomer())
	require.NoError(t, err)

	assert.True(t, state.Success)
	assert.Equal(t, "Cliente creado exitosamente.", state.Message)
	assert.Equal(t, "cust-1", state.CustomerID)
	assert.Equal(t, "acct-9", state.AccountID)
}

func TestCustomerCreateAccountFailureIsNonFatal(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers, http.StatusOK, `{"data":{"id":1,"documentId":"cust-1"}}`)
	fc.handle(cms.PathAccountStates, http.StatusOK, `{"data":[{"id":1,"documentId":"state-free","name":"FREE"}]}`)
	fc.handle(cms.PathAccounts, http.StatusInternalServerError,
		`{"error":{"status":500,"message":"boom"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Create(context.Background(), "jwt", validCustomer())
	require.NoError(t, err)

	// The customer sticks even when its account does not.
	assert.True(t, state.Success)
	assert.Equal(t, "cust-1", state.CustomerID)
	assert.Empty(t, state.AccountID)
}

func TestCustomerCreateValidation(t *testing.T) {
	fc := newFakeCMS()
	s := newCustomerService(t, fc)

	req := validCustomer()
	req.FirstName = "M4ría"
	req.Phone = "abc"

	state, err := s.Create(context.Background(), "jwt", req)
	require.NoError(t, err)

	assert.False(t, state.Success)
	assert.Contains(t, state.ValidationErrors, "first_name")
	assert.Contains(t, state.ValidationErrors, "phone")
	assert.Empty(t, fc.hits)
}

func TestCustomerCreateRejected(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers, http.StatusForbidden,
		`{"error":{"status":403,"name":"ForbiddenError","message":"Forbidden"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Create(context.Background(), "jwt", validCustomer())
	require.NoError(t, err)

	assert.False(t, state.Success)
	assert.Equal(t, "Error al crear el cliente.", state.Message)
	require.NotNil(t, state.CmsErrors)
	assert.Equal(t, http.StatusForbidden, state.CmsErrors.Status)
}

func TestCustomerList(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers, http.StatusOK,
		`{"data":[{"id":1,"documentId":"cust-1","first_name":"María","account":{"documentId":"acct-9"}}]}`)

	s := newCustomerService(t, fc)
	customers, cmsErr, err := s.List(context.Background(), "jwt")
	require.NoError(t, err)
	require.Nil(t, cmsErr)
	require.Len(t, customers, 1)
	assert.Equal(t, "María", customers[0].FirstName)
	require.NotNil(t, customers[0].Account)
	assert.Equal(t, "acct-9", customers[0].Account.DocumentID)
}

func TestCustomerListWithoutSession(t *testing.T) {
	fc := newFakeCMS()
	s := newCustomerService(t, fc)

	customers, cmsErr, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, customers)
	require.NotNil(t, cmsErr)
	assert.Equal(t, http.StatusUnauthorized, cmsErr.Status)
	assert.Empty(t, fc.hits)
}

func TestCustomerUpdate(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers+"/cust-1", http.StatusOK, `{"data":{"id":1,"documentId":"cust-1"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Update(context.Background(), "jwt", "cust-1", models.UpdateCustomerRequest{Phone: "3007654321"})
	require.NoError(t, err)
	assert.True(t, state.Success)
	assert.Equal(t, "Cliente actualizado exitosamente.", state.Message)
}

func TestCustomerUpdateMissingID(t *testing.T) {
	fc := newFakeCMS()
	s := newCustomerService(t, fc)

	state, err := s.Update(context.Background(), "jwt", "", models.UpdateCustomerRequest{})
	require.NoError(t, err)
	assert.False(t, state.Success)
	assert.Contains(t, state.ValidationErrors, "documentId")
}

func TestCustomerDeleteRemovesAccountFirst(t *testing.T) {
	fc := newFakeCMS()
	var accountDeleted, customerDeleted bool
	fc.mux.HandleFunc(cms.PathCustomers+"/cust-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":{"id":1,"documentId":"cust-1","account":{"documentId":"acct-9"}}}`))
		case http.MethodDelete:
			customerDeleted = true
			w.WriteHeader(http.StatusNoContent)
		}
	})
	fc.mux.HandleFunc(cms.PathAccounts+"/acct-9", func(w http.ResponseWriter, r *http.Request) {
		accountDeleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	s := newCustomerService(t, fc)
	state, err := s.Delete(context.Background(), "jwt", "cust-1")
	require.NoError(t, err)

	assert.True(t, state.Success)
	assert.Equal(t, "Cliente eliminado exitosamente.", state.Message)
	assert.True(t, accountDeleted)
	assert.True(t, customerDeleted)
}

func TestCustomerDeleteAccountFailureIsNonFatal(t *testing.T) {
	fc := newFakeCMS()
	fc.mux.HandleFunc(cms.PathCustomers+"/cust-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":{"id":1,"documentId":"cust-1","account":{"documentId":"acct-9"}}}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	fc.handle(cms.PathAccounts+"/acct-9", http.StatusInternalServerError,
		`{"error":{"status":500,"message":"boom"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Delete(context.Background(), "jwt", "cust-1")
	require.NoError(t, err)
	assert.True(t, state.Success)
}

func TestCustomerDeleteNotFound(t *testing.T) {
	fc := newFakeCMS()
	fc.handle(cms.PathCustomers+"/ghost", http.StatusNotFound,
		`{"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`)

	s := newCustomerService(t, fc)
	state, err := s.Delete(context.Background(), "jwt", "ghost")
	require.NoError(t, err)

	assert.False(t, state.Success)
	assert.Equal(t, "Cliente no encontrado.", state.Message)
	require.NotNil(t, state.CmsErrors)
	assert.Equal(t, http.StatusNotFound, state.CmsErrors.Status)
}
