package socialgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound indicates an operation referenced a user that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUserNotFound is returned by friend suggestion; it matches ErrNodeNotFound.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNodeNotFound)

	// ErrNodesMissing indicates a connection was requested between users that do not both exist.
	ErrNodesMissing = errors.New("both users must exist")

	// ErrInvalidWeight indicates a weight that is not a non-negative integer.
	ErrInvalidWeight = errors.New("weight must be a non-negative integer")

	// ErrEdgeNotFound indicates there is no connection between the given users.
	ErrEdgeNotFound = errors.New("no such connection")

	// ErrNoPath indicates the source and target are in different components.
	ErrNoPath = errors.New("no path between users")

	// ErrSelfConnection indicates an attempt to connect a user to itself.
	ErrSelfConnection = errors.New("cannot connect a user to itself")

	// ErrEmptyID indicates a blank user id.
	ErrEmptyID = errors.New("user id is empty")

	// ErrDuplicateID indicates two distinct ids in a snapshot that normalize to the same user.
	ErrDuplicateID = errors.New("user ids collide after normalization")
)
