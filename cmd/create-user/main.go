// CLI tool to create the single owner account with a bcrypt-hashed PIN and a
// profile seeded from profile.yaml.
// Usage: go run ./cmd/create-user
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"lg/fittrack-go-api/internal/config"
)

func main() {
	cfg := config.Load()
	if cfg.DBURL == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is not set")
		os.Exit(1)
	}

	defaults, err := config.LoadProfile(cfg.ProfileFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var existing int
	if err := conn.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&existing); err != nil {
		fmt.Fprintf(os.Stderr, "Error checking users: %v\n", err)
		os.Exit(1)
	}
	if existing > 0 {
		fmt.Fprintln(os.Stderr, "A user already exists; fittrack is single-user.")
		os.Exit(1)
	}

	pin, err := readPin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing PIN: %v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	_, err = conn.Exec(ctx,
		`INSERT INTO users (id, pin_hash, weight_kg, height_cm, age, activity_level, goal,
		                    calorie_target, protein_target_g, water_goal_ml)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		userID, string(hash), defaults.WeightKg, defaults.HeightCm, defaults.Age,
		string(defaults.ActivityLevel), string(defaults.Goal),
		defaults.CalorieTarget, defaults.ProteinTargetG, defaults.WaterGoalML,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:       %s\n", userID)
	fmt.Printf("  Profile:  %.1f kg, %.0f cm, %d y, %s, %s\n",
		defaults.WeightKg, defaults.HeightCm, defaults.Age, defaults.ActivityLevel, defaults.Goal)
	fmt.Printf("  Targets:  %d kcal, %d g protein\n", defaults.CalorieTarget, defaults.ProteinTargetG)
}

// readPin prompts twice without echo when stdin is a terminal.
func readPin() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; run interactively to set the PIN")
	}

	fmt.Print("PIN: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read PIN: %w", err)
	}
	fmt.Print("Confirm PIN: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read PIN: %w", err)
	}

	pin := strings.TrimSpace(string(first))
	if pin != strings.TrimSpace(string(second)) {
		return "", fmt.Errorf("PINs do not match")
	}
	if len(pin) < 4 {
		return "", fmt.Errorf("PIN must be at least 4 characters")
	}
	return pin, nil
}
