package domain

import (
	"slices"
	"time"
)

type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // argon2id or bcrypt encoded
	Active       bool
	Authorities  []string // e.g. ROLE_CADASTRAR_CATEGORIA
	CreatedAt    time.Time
}

// HasAuthority reports whether the user was granted the authority.
func (u User) HasAuthority(authority string) bool {
	return slices.Contains(u.Authorities, authority)
}

// Authorities guarding the category resource.
const (
	AuthorityCreateCategory = "ROLE_CADASTRAR_CATEGORIA"
	AuthoritySearchCategory = "ROLE_PESQUISAR_CATEGORIA"
	AuthorityRemoveCategory = "ROLE_REMOVER_CATEGORIA"
)
