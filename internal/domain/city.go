package domain

import "time"

// City groups places and fixes the timezone their events are scheduled in
type City struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// Location loads the city's IANA timezone
func (c *City) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, Wrap(KindInvalidTimezone, ErrInvalidTimezone.Message, err)
	}
	return loc, nil
}

// CityPatch holds the supplied fields of a city create or update
type CityPatch struct {
	Name     *string
	Timezone *string
}
