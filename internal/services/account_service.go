package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Juan-Devgo/Clothes/internal/cms"
	"github.com/Juan-Devgo/Clothes/internal/models"
)

type AccountService struct {
	Client *cms.Client
}

func NewAccountService(client *cms.Client) *AccountService {
	return &AccountService{Client: client}
}

// accountQuery populates everything the account view renders: who owns it,
// its payments, its state and the products held against it.
func accountQuery() string {
	return cms.NewQuery().
		Populate("customer", cms.Relation{Fields: []string{"first_name", "last_name"}}).
		Populate("payments", cms.Relation{
			Fields: []string{"amount", "currency", "createdAt"},
			Populate: map[string]cms.Relation{
				"method": {Fields: []string{"type"}},
			},
		}).
		Populate("state", cms.Relation{Fields: []string{"name", "label", "description"}}).
		Populate("products", cms.Relation{
			Fields: []string{"quantity"},
			Populate: map[string]cms.Relation{
				"product": {
					Fields: []string{"name", "description", "price", "currency", "stock"},
					Populate: map[string]cms.Relation{
						"category":    {Fields: []string{"name", "label"}},
						"subcategory": {Fields: []string{"name", "label"}},
						"photo":       {Fields: []string{"name", "alternativeText", "url", "formats"}},
					},
				},
				"state": {Fields: []string{"name", "label"}},
			},
		}).
		Encode()
}

func (s *AccountService) GetByID(ctx context.Context, token, documentID string) (*models.Account, *models.CmsError, error) {
	res, err := s.Client.Get(ctx, cms.PathAccounts+"/"+documentID+"?"+accountQuery(), token)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return nil, &models.CmsError{Status: res.Status, Message: "Cuenta no encontrada"}, nil
	}
	var account models.Account
	if err := res.Decode(&account); err != nil {
		return nil, nil, err
	}
	return &account, nil, nil
}

func (s *AccountService) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*models.Account, *models.CmsError, error) {
	res, err := s.Client.Put(ctx, cms.PathAccounts+"/"+documentID, token, map[string]interface{}{"data": data})
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return nil, &models.CmsError{Status: res.Status, Message: res.Message}, nil
	}
	var account models.Account
	if err := res.Decode(&account); err != nil {
		return nil, nil, err
	}
	log.Printf("[accounts][update] ok documentId=%s", documentID)
	return &account, nil, nil
}

// CreateForCustomer opens a zero-balance COP account in the FREE state,
// linked to the customer. Callers treat a failure as non-fatal.
func (s *AccountService) CreateForCustomer(ctx context.Context, token, customerDocumentID string) (string, error) {
	freeStateID, err := s.accountStateID(ctx, token, "FREE")
	if err != nil {
		return "", err
	}
	if freeStateID == "" {
		log.Printf("[accounts][create] FREE state not found; creating account without state")
	}

	data := map[string]interface{}{
		"amount":   0,
		"currency": "COP",
		"customer": map[string]interface{}{"connect": []string{customerDocumentID}},
	}
	if freeStateID != "" {
		data["state"] = map[string]interface{}{"connect": []string{freeStateID}}
	}

	res, err := s.Client.Post(ctx, cms.PathAccounts, token, map[string]interface{}{"data": data})
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", errors.New("create account: " + res.Message)
	}

	var account models.Account
	if err := res.Decode(&account); err != nil {
		return "", err
	}
	return account.DocumentID, nil
}

func (s *AccountService) Delete(ctx context.Context, token, documentID string) error {
	res, err := s.Client.Delete(ctx, cms.PathAccounts+"/"+documentID, token)
	if err != nil {
		return err
	}
	if !res.Success {
		return errors.New("delete account: " + res.Message)
	}
	return nil
}

func (s *AccountService) accountStateID(ctx context.Context, token, name string) (string, error) {
	query := cms.NewQuery().FilterEq("name", name).Encode()
	res, err := s.Client.Get(ctx, cms.PathAccountStates+"?"+query, token)
	if err != nil {
		return "", err
	}
	if !res.Success {
		if res.Status == http.StatusUnauthorized {
			return "", errors.New("account states: unauthorized")
		}
		return "", nil
	}
	var states []models.AccountState
	if err := res.Decode(&states); err != nil || len(states) == 0 {
		return "", nil
	}
	return states[0].DocumentID, nil
}
