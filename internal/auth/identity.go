package auth

import (
	"github.com/google/uuid"

	"github.com/vaulto-note/backend/internal/models"
)

type IdentityKind int

const (
	// IdentityStored — обычный пользователь из таблицы users.
	IdentityStored IdentityKind = iota
	// IdentitySystem — сервисный вызов по операторскому секрету, в БД не хранится.
	IdentitySystem
)

// Identity is the caller resolved from a bearer value: either a stored user
// or the fixed system identity granted by the operator secret. Downstream
// code switches on Kind instead of probing for missing fields.
type Identity struct {
	Kind IdentityKind
	User *models.User // nil when Kind == IdentitySystem
}

func StoredIdentity(u *models.User) Identity {
	return Identity{Kind: IdentityStored, User: u}
}

func SystemIdentity() Identity {
	return Identity{Kind: IdentitySystem}
}

// UserID returns the identity's id; the system identity uses the all-zero
// UUID sentinel.
func (id Identity) UserID() uuid.UUID {
	if id.Kind == IdentitySystem || id.User == nil {
		return uuid.Nil
	}
	return id.User.ID
}

func (id Identity) IsSystem() bool {
	return id.Kind == IdentitySystem
}
