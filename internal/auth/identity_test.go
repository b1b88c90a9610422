package auth

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vaulto-note/backend/internal/models"
)

func TestIdentity(t *testing.T) {
	u := &models.User{ID: uuid.New(), IsActive: true}

	stored := StoredIdentity(u)
	if stored.IsSystem() {
		t.Error("stored identity reported as system")
	}
	if stored.UserID() != u.ID {
		t.Errorf("UserID = %s, want %s", stored.UserID(), u.ID)
	}

	system := SystemIdentity()
	if !system.IsSystem() {
		t.Error("system identity not reported as system")
	}
	if system.UserID() != uuid.Nil {
		t.Errorf("system UserID = %s, want all-zero sentinel", system.UserID())
	}
	if system.User != nil {
		t.Error("system identity must not carry a user record")
	}
}
