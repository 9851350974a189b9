package httptransport

import (
	"consentry/internal/catalog"
	id "consentry/pkg/domain"
)

// AuthorizeRequest is the body for creating a new consent.
type AuthorizeRequest struct {
	UserID      id.UserID            `json:"userId"`
	TppID       id.ProviderID        `json:"tppId"`
	Permissions []catalog.Permission `json:"permissions"`
	AccountIDs  []id.AccountID       `json:"accountIds"`
}

// AccessRequest is the body for recording one data access under a consent.
type AccessRequest struct {
	Endpoint string `json:"endpoint"`
	Details  string `json:"details"`
}
