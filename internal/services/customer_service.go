package services

import (
	"context"
	"log"
	"net/http"

	"github.com/Juan-Devgo/Clothes/internal/cms"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/validation"
)

// CustomerService orchestrates the customer CRUD against the CMS, including
// the best-effort companion account. The backend has no transactions, so
// account creation/deletion around a customer is compensating and non-fatal:
// a failure is logged and reported, never rolled back.
type CustomerService struct {
	Client   *cms.Client
	Accounts *AccountService
}

func NewCustomerService(client *cms.Client, accounts *AccountService) *CustomerService {
	return &CustomerService{Client: client, Accounts: accounts}
}

func listQuery() string {
	return cms.NewQuery().
		Populate("account", cms.Relation{Fields: []string{"documentId"}}).
		Populate("sales", cms.Relation{Fields: []string{"documentId"}}).
		Populate("events", cms.Relation{Fields: []string{"documentId"}}).
		Encode()
}

func (s *CustomerService) List(ctx context.Context, token string) ([]models.Customer, *models.CmsError, error) {
	res, err := s.Client.Get(ctx, cms.PathCustomers+"?"+listQuery(), token)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return nil, &models.CmsError{Status: res.Status, Message: res.Message}, nil
	}
	var customers []models.Customer
	if err := res.Decode(&customers); err != nil {
		return nil, nil, err
	}
	return customers, nil, nil
}

func (s *CustomerService) GetByID(ctx context.Context, token, documentID string) (*models.Customer, error) {
	query := cms.NewQuery().
		Populate("account", cms.Relation{Fields: []string{"documentId"}}).
		Encode()
	res, err := s.Client.Get(ctx, cms.PathCustomers+"/"+documentID+"?"+query, token)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, nil
	}
	var customer models.Customer
	if err := res.Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create makes the customer and then, best-effort, its zero-balance
// account. Account failure does not roll the customer back: the result is
// still a success with AccountID absent.
func (s *CustomerService) Create(ctx context.Context, token string, req models.CreateCustomerRequest) (*models.FormState, error) {
	log.Printf("[customers][create] start email=%q", req.Email)

	if errs := validation.Struct(req); errs != nil {
		log.Printf("[customers][create] validation failed")
		return models.ValidationFailed(errs, req), nil
	}

	res, err := s.Client.Post(ctx, cms.PathCustomers, token, map[string]interface{}{"data": req})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		log.Printf("[customers][create] cms rejected status=%d message=%q", res.Status, res.Message)
		return models.CmsFailed("Error al crear el cliente.", &models.CmsError{Status: statusOr500(res.Status), Message: res.Message}), nil
	}

	var customer models.Customer
	if err := res.Decode(&customer); err != nil {
		return nil, err
	}
	log.Printf("[customers][create] customer created documentId=%s", customer.DocumentID)

	var accountID string
	if customer.DocumentID != "" {
		accountID, err = s.Accounts.CreateForCustomer(ctx, token, customer.DocumentID)
		if err != nil {
			log.Printf("[customers][create] account creation failed documentId=%s: %v", customer.DocumentID, err)
			accountID = ""
		} else {
			log.Printf("[customers][create] account created accountId=%s", accountID)
		}
	}

	return &models.FormState{
		Success:    true,
		Message:    "Cliente creado exitosamente.",
		CustomerID: customer.DocumentID,
		AccountID:  accountID,
	}, nil
}

func (s *CustomerService) Update(ctx context.Context, token, documentID string, req models.UpdateCustomerRequest) (*models.FormState, error) {
	if documentID == "" {
		return models.ValidationFailed(map[string][]string{
			"documentId": {"El ID del cliente es requerido"},
		}, req), nil
	}
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), nil
	}

	res, err := s.Client.Put(ctx, cms.PathCustomers+"/"+documentID, token, map[string]interface{}{"data": req})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		log.Printf("[customers][update] cms rejected documentId=%s status=%d", documentID, res.Status)
		return models.CmsFailed("Error al actualizar el cliente.", &models.CmsError{Status: statusOr500(res.Status), Message: res.Message}), nil
	}

	log.Printf("[customers][update] ok documentId=%s", documentID)
	return &models.FormState{Success: true, Message: "Cliente actualizado exitosamente."}, nil
}

// Delete removes the customer's account first, then the customer. Neither a
// failed account lookup nor a failed account delete stops the customer
// deletion.
func (s *CustomerService) Delete(ctx context.Context, token, documentID string) (*models.FormState, error) {
	log.Printf("[customers][delete] start documentId=%s", documentID)

	if documentID == "" {
		return models.ValidationFailed(map[string][]string{
			"documentId": {"El ID del cliente es requerido"},
		}, nil), nil
	}

	customer, err := s.GetByID(ctx, token, documentID)
	if err != nil {
		log.Printf("[customers][delete] lookup failed documentId=%s: %v", documentID, err)
		customer = nil
	}
	if customer == nil {
		// A transport failure on lookup still lets the delete proceed; a
		// clean miss is reported as not found.
		if err == nil {
			return models.CmsFailed("Cliente no encontrado.", &models.CmsError{Status: http.StatusNotFound}), nil
		}
	}

	if customer != nil && customer.Account != nil && customer.Account.DocumentID != "" {
		if err := s.Accounts.Delete(ctx, token, customer.Account.DocumentID); err != nil {
			log.Printf("[customers][delete] account delete failed accountId=%s: %v", customer.Account.DocumentID, err)
		} else {
			log.Printf("[customers][delete] account deleted accountId=%s", customer.Account.DocumentID)
		}
	}

	res, err := s.Client.Delete(ctx, cms.PathCustomers+"/"+documentID, token)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		log.Printf("[customers][delete] cms rejected documentId=%s status=%d", documentID, res.Status)
		return models.CmsFailed("Error al eliminar el cliente.", &models.CmsError{Status: statusOr500(res.Status), Message: res.Message}), nil
	}

	log.Printf("[customers][delete] ok documentId=%s", documentID)
	return &models.FormState{Success: true, Message: "Cliente eliminado exitosamente."}, nil
}

func statusOr500(status int) int {
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}
