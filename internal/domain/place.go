package domain

import "time"

// Place is a venue inside a city, owned by its host
type Place struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CityID    string    `json:"city_id"`
	Address   string    `json:"address"`
	HostID    string    `json:"host_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PlacePatch holds the supplied fields of a place create or update
type PlacePatch struct {
	Name    *string
	CityID  *string
	Address *string
}
