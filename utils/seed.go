package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"fountains-be/config"
	"fountains-be/models"
)

// RunSeed wipes both collections and repopulates fountains from the given
// source dataset, assigning fresh sequential ids.
func RunSeed(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source dataset: %w", err)
	}

	var source []models.Fountain
	if err := json.Unmarshal(data, &source); err != nil {
		return fmt.Errorf("failed to parse source dataset: %w", err)
	}

	log.Println("Seeding database with fountain data...")

	// Reset existing data so we re-seed full fountain objects
	if err := config.GetCollection("fountains").Reset(); err != nil {
		return fmt.Errorf("failed to reset fountains: %w", err)
	}
	if err := config.GetCollection("reports").Reset(); err != nil {
		return fmt.Errorf("failed to reset reports: %w", err)
	}

	successCount := 0
	errorCount := 0

	for _, f := range source {
		_, err := models.CreateFountain(models.Fountain{
			MapID:      f.MapID,
			Name:       f.Name,
			Location:   f.Location,
			InPark:     f.InPark,
			Latitude:   f.Latitude,
			Longitude:  f.Longitude,
			Maintainer: f.Maintainer,
			Note:       f.Note,
			Status:     models.StatusWorking,
			Accessible: true,
		})
		if err != nil {
			errorCount++
			log.Printf("✗ Error adding %s: %v", seedLabel(f), err)
			continue
		}
		successCount++
		log.Printf("✓ Added: %s", seedLabel(f))
	}

	log.Println("--- Seeding Complete ---")
	log.Printf("Successfully added: %d fountains", successCount)
	log.Printf("Errors: %d", errorCount)
	return nil
}

func seedLabel(f models.Fountain) string {
	if f.Name != "" {
		return f.Name
	}
	return f.MapID
}
