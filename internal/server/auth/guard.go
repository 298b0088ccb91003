package auth

import "github.com/dmitrijs2005/accountkeeper/internal/server/models"

// CanModify decides whether acting may modify the account targetID.
// Admins may modify any account regardless of its state; anyone else only
// their own account, and only while it is active.
func CanModify(acting *models.Account, targetID string) bool {
	if acting == nil {
		return false
	}
	if acting.IsAdmin {
		return true
	}
	return acting.ID == targetID && acting.IsActive()
}

// IsAdmin gates the admin-only operations.
func IsAdmin(acting *models.Account) bool {
	return acting != nil && acting.IsAdmin
}
