package hub

// PlayerPayload is the player's grid cell as sent to observers.
type PlayerPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FeaturePayload is one materialized feature as sent to observers.
type FeaturePayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"kind"`
}

// StateMessage is the full window snapshot broadcast after any tick that
// changed the world.
type StateMessage struct {
	Type     string           `json:"type"`
	Tick     uint64           `json:"tick"`
	Seed     int64            `json:"seed"`
	Player   PlayerPayload    `json:"player"`
	Features []FeaturePayload `json:"features"`
}
