// Command create-user creates an account with a bcrypt-hashed password and
// optional biometrics, then prints a session token for it.
//
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"lg/nutrichat-api/internal/config"
	"lg/nutrichat-api/nutrition"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DB.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label + ": ")
		s, _ := reader.ReadString('\n')
		return strings.TrimSpace(s)
	}

	email := strings.ToLower(prompt("Email"))
	password := prompt("Password")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Email and password are required")
		os.Exit(1)
	}

	fmt.Println("Biometrics (leave blank to skip):")
	b := biometrics{
		age:      optionalInt(prompt("  Age")),
		height:   optionalFloat(prompt("  Height (inches)")),
		weight:   optionalFloat(prompt("  Weight (lbs)")),
		sex:      optionalString(prompt("  Sex (male/female/other)")),
		activity: optionalString(prompt("  Activity level")),
		goal:     optionalString(prompt("  Goal")),
	}
	if errs := nutrition.ValidateBiometrics(b.update()); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}
	b.canonicalizeGoal()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	var userID int
	err = conn.QueryRow(ctx,
		`INSERT INTO users (email, password, age, height_inches, weight_lbs, sex, activity_level, goal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		email, string(hash), b.age, b.height, b.weight, b.sex, b.activity, b.goal,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(cfg.Session.TTL)
	if _, err := conn.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Email:      %s\n", email)
	fmt.Printf("  Token:      %s\n", token)
	fmt.Printf("  Expires:    %s\n", expiresAt.Format(time.RFC3339))
}

type biometrics struct {
	age                 *int
	height, weight      *float64
	sex, activity, goal *string
}

func (b biometrics) update() nutrition.BiometricsUpdate {
	return nutrition.BiometricsUpdate{
		Age:           b.age,
		HeightInches:  b.height,
		WeightLbs:     b.weight,
		Sex:           b.sex,
		ActivityLevel: b.activity,
		Goal:          b.goal,
	}
}

// canonicalizeGoal stores the goal under its public name.
func (b *biometrics) canonicalizeGoal() {
	if b.goal == nil {
		return
	}
	if g, ok := nutrition.ParseGoal(*b.goal); ok {
		name := g.PublicName()
		b.goal = &name
	}
}

// optionalInt returns nil for blank input. Unparseable input becomes -1 so
// validation reports it.
func optionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		v = -1
	}
	return &v
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v = -1
	}
	return &v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	s = strings.ToLower(s)
	return &s
}
