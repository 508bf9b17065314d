package redis

import (
	"fmt"

	"github.com/mcoot/pizzeria/internal/model"
)

// Key prefix for all pizzeria data
const keyPrefix = "pizzeria"

// Entity names used for ID sequences and keys
const (
	entityAccount   = "account"
	entityAddress   = "address"
	entityPayment   = "payment"
	entityProduct   = "product"
	entityPromotion = "promotion"
	entityRecord    = "record"
)

// seqKey returns the Redis key for an entity's ID counter
func seqKey(entity string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, entity)
}

// entityKey returns the Redis key for a single entity
func entityKey(entity string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, entity, id)
}

// catalogIndexKey returns the Redis key for the SET of all IDs of a catalog entity
func catalogIndexKey(entity string) string {
	return fmt.Sprintf("%s:idx:%s", keyPrefix, entity)
}

// emailIndexKey returns the Redis key for the email -> account_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// ownedIndexKey returns the Redis key for the SET of an account's addresses or payments
func ownedIndexKey(entity string, accountID model.AccountID) string {
	return fmt.Sprintf("%s:idx:%s_by_account:%d", keyPrefix, entity, accountID)
}

// sessionKey returns the Redis key for a session token
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}
