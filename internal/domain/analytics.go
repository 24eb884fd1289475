package domain

// Path is a minimal-cost route between two users, endpoints inclusive.
type Path struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Nodes  []string `json:"nodes"`
	Cost   int      `json:"cost"`
}

// Hops returns the number of connections traversed by the path.
func (p Path) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// Community is one cycle of the fundamental cycle basis. The last member is
// connected back to the first.
type Community struct {
	Members []string `json:"members"`
}

// Suggestion is a candidate friend with the number of mutual connections.
type Suggestion struct {
	User          string `json:"user"`
	MutualFriends int    `json:"mutualFriends"`
}

// CentralityScore is the normalized degree of a single user.
type CentralityScore struct {
	User   string  `json:"user"`
	Score  float64 `json:"score"`
	Degree int     `json:"degree"`
}

// PathRequest names a source/target pair for batch path queries.
type PathRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// PathOutcome is the result of a single pair within a batch query.
type PathOutcome struct {
	Request PathRequest `json:"request"`
	Path    *Path       `json:"path,omitempty"`
	Error   string      `json:"error,omitempty"`
}
