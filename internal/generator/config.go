package generator

// Config drives the synthetic social graph generator.
type Config struct {
	NumUsers           int
	ConnectionsPerUser int
	TriangleChance     float64
	MaxWeight          int
	Seed               int64
}

// DefaultConfig returns baseline settings for a mid-sized demo network.
func DefaultConfig() Config {
	return Config{
		NumUsers:           200,
		ConnectionsPerUser: 3,
		TriangleChance:     0.3,
		MaxWeight:          10,
		Seed:               42,
	}
}
