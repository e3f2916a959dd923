package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"smartattend/internal/cache"
	"smartattend/internal/config"
	"smartattend/internal/db"
	"smartattend/internal/model"
	"smartattend/internal/repository"
	"smartattend/internal/service"
)

// SeedClassroomData is one entry of the seed document.
type SeedClassroomData struct {
	Name         string  `json:"name"`
	StaticQRCode string  `json:"static_qr_code"`
	Location     *string `json:"location"`
}

func main() {
	source := flag.String("source", "classrooms.json", "path or http(s) URL of a JSON array of classrooms")
	configFile := flag.String("config", "config.yaml", "configuration file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gormDB)
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Printf("Reading classrooms from: %s", *source)
	raw, err := readSource(*source)
	if err != nil {
		log.Fatalf("Failed to read classrooms: %v", err)
	}

	classrooms, skipped, err := parseClassrooms(raw)
	if err != nil {
		log.Fatalf("Failed to parse classrooms: %v", err)
	}
	if skipped > 0 {
		log.Printf("Skipped %d invalid classrooms", skipped)
	}

	cacheClient := cache.New(cfg.Redis)
	defer cacheClient.Close()

	classroomService := service.NewClassroomService(repository.NewClassroomRepository(gormDB), cacheClient)
	count, err := classroomService.SeedClassrooms(context.Background(), classrooms)
	if err != nil {
		log.Fatalf("Failed to seed classrooms after %d: %v", count, err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Classrooms created or updated: %d", count)
}

// readSource loads the seed document from a local file or an HTTP endpoint.
func readSource(source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.ReadFile(source)
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status code: %d", source, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseClassrooms decodes the seed document, dropping entries without a name
// or QR code.
func parseClassrooms(raw []byte) ([]model.Classroom, int, error) {
	var items []SeedClassroomData
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to parse JSON: %w", err)
	}

	classrooms := make([]model.Classroom, 0, len(items))
	skipped := 0
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		qr := strings.TrimSpace(item.StaticQRCode)
		if name == "" || qr == "" {
			skipped++
			continue
		}
		classrooms = append(classrooms, model.Classroom{
			Name:         name,
			StaticQRCode: qr,
			Location:     item.Location,
		})
	}
	return classrooms, skipped, nil
}
