package service

import "github.com/vanshika/socialgraph/internal/domain"

// ConnectionInput is the inbound payload for creating or updating a connection.
type ConnectionInput struct {
	Source string
	Target string
	Weight int
}

// UserConnection is one connection requested together with a new user.
type UserConnection struct {
	Target string
	Weight int
}

// UserCreation reports the outcome of AddUserWithConnections.
type UserCreation struct {
	ID          string
	Created     bool
	ConnectedTo []string
}

// LoadSource describes where the in-memory graph came from at startup.
type LoadSource string

const (
	LoadedFromStore LoadSource = "store"
	LoadedFromSeed  LoadSource = "seed"
)

// LoadResult reports the outcome of Load.
type LoadResult struct {
	Source      LoadSource
	Users       int
	Connections int
	// Reason is set when the seed graph replaced stored state.
	Reason string
}

// ListUsersParams defines filters for listing users.
type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
}

// PaginationMeta captures pagination metadata returned to API clients.
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// UsersPage represents paginated users with metadata.
type UsersPage struct {
	Items      []domain.UserSummary `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}
