package models

import (
	"fmt"
	"strings"

	"fountains-be/config"
)

// FountainStatus enum
type FountainStatus string

const (
	StatusWorking          FountainStatus = "working"
	StatusNeedsMaintenance FountainStatus = "needs_maintenance"
	StatusOutOfService     FountainStatus = "out_of_service"
)

// Accessible is stored as a boolean but tolerates the legacy 0/1 form on
// input.
type Accessible bool

func (a *Accessible) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "true", "1":
		*a = true
	case "false", "0":
		*a = false
	default:
		return fmt.Errorf("accessible must be a boolean or 0/1")
	}
	return nil
}

// Fountain represents a tracked public drinking fountain
type Fountain struct {
	ID         int            `json:"id"`
	MapID      string         `json:"mapid,omitempty"`
	Name       string         `json:"name"`
	Location   string         `json:"location"`
	InPark     string         `json:"inpark,omitempty"`
	Latitude   float64        `json:"latitude,omitempty"`
	Longitude  float64        `json:"longitude,omitempty"`
	Maintainer string         `json:"maintainer,omitempty"`
	Note       string         `json:"note,omitempty"`
	Status     FountainStatus `json:"status"`
	Accessible Accessible     `json:"accessible"`
}

// FountainFilters narrows GetAllFountains results. Zero-valued fields are
// not applied; set fields compose with logical AND.
type FountainFilters struct {
	InPark string
	Status string
	Note   string
}

// FountainUpdate carries a partial update; nil fields are left untouched.
type FountainUpdate struct {
	Status     *FountainStatus
	Accessible *Accessible
	Note       *string
	Name       *string
	Location   *string
}

// GetAllFountains returns every fountain matching the given filters. An
// empty result is not an error.
func GetAllFountains(filters FountainFilters) ([]Fountain, error) {
	var fountains []Fountain
	if err := config.GetCollection("fountains").Read(&fountains); err != nil {
		return nil, err
	}

	result := make([]Fountain, 0, len(fountains))
	for _, f := range fountains {
		if filters.InPark != "" && f.InPark != filters.InPark {
			continue
		}
		if filters.Status != "" && string(f.Status) != filters.Status {
			continue
		}
		if filters.Note != "" && !strings.Contains(strings.ToLower(f.Note), strings.ToLower(filters.Note)) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

// GetFountainByID returns the fountain with the given id, or nil when no
// such fountain exists.
func GetFountainByID(id int) (*Fountain, error) {
	var fountains []Fountain
	if err := config.GetCollection("fountains").Read(&fountains); err != nil {
		return nil, err
	}
	for i := range fountains {
		if fountains[i].ID == id {
			return &fountains[i], nil
		}
	}
	return nil, nil
}

// GetFountainByMapID looks a fountain up by its external map identifier.
func GetFountainByMapID(mapid string) (*Fountain, error) {
	var fountains []Fountain
	if err := config.GetCollection("fountains").Read(&fountains); err != nil {
		return nil, err
	}
	for i := range fountains {
		if fountains[i].MapID == mapid {
			return &fountains[i], nil
		}
	}
	return nil, nil
}

// CreateFountain assigns the next id, applies defaults (status "working",
// accessible true when unset or false) and persists the fountain. Returns
// the new id.
func CreateFountain(f Fountain) (int, error) {
	col := config.GetCollection("fountains")

	var fountains []Fountain
	newID := 0
	err := col.Update(&fountains, func() (any, error) {
		maxID := 0
		for _, existing := range fountains {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}

		id, err := col.NextID(maxID)
		if err != nil {
			return nil, err
		}
		newID = id

		f.ID = id
		if f.Status == "" {
			f.Status = StatusWorking
		}
		if !f.Accessible {
			f.Accessible = true
		}

		return append(fountains, f), nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// UpdateFountain merges the provided fields into the fountain with the
// given id. Returns the number of changed records: 0 when the id matched
// nothing, 1 otherwise.
func UpdateFountain(id int, updates FountainUpdate) (int, error) {
	col := config.GetCollection("fountains")

	var fountains []Fountain
	changes := 0
	err := col.Update(&fountains, func() (any, error) {
		for i := range fountains {
			if fountains[i].ID != id {
				continue
			}
			if updates.Status != nil {
				fountains[i].Status = *updates.Status
			}
			if updates.Accessible != nil {
				fountains[i].Accessible = *updates.Accessible
			}
			if updates.Note != nil {
				fountains[i].Note = *updates.Note
			}
			if updates.Name != nil {
				fountains[i].Name = *updates.Name
			}
			if updates.Location != nil {
				fountains[i].Location = *updates.Location
			}
			changes = 1
			return fountains, nil
		}
		return nil, nil
	})
	if err != nil {
		return 0, err
	}
	return changes, nil
}

// DeleteFountain removes the fountain with the given id. Reports referencing
// it are left in place. Returns the number of removed records.
func DeleteFountain(id int) (int, error) {
	col := config.GetCollection("fountains")

	var fountains []Fountain
	changes := 0
	err := col.Update(&fountains, func() (any, error) {
		filtered := make([]Fountain, 0, len(fountains))
		for _, f := range fountains {
			if f.ID == id {
				changes = 1
				continue
			}
			filtered = append(filtered, f)
		}
		if changes == 0 {
			return nil, nil
		}
		return filtered, nil
	})
	if err != nil {
		return 0, err
	}
	return changes, nil
}
