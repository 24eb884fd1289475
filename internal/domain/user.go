package domain

// Neighbor is a directly connected user together with the connection weight.
type Neighbor struct {
	User   string `json:"user"`
	Weight int    `json:"weight"`
}

// GraphStats summarizes the size of the graph.
type GraphStats struct {
	Users       int `json:"users"`
	Connections int `json:"connections"`
	Communities int `json:"communities"`
}

// UserSummary is a user together with its number of connections.
type UserSummary struct {
	ID          string `json:"id"`
	Connections int    `json:"connections"`
}
