// Command seed loads demo users and weekly reports from a YAML fixture into
// Postgres. Intended for local development and staging; user inserts are
// idempotent on email, report inserts upsert on (user, week).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CLI flags
var (
	fixturePath = flag.String("fixture", "", "Path to the YAML fixture (required)")
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
)

// Fixture contract:
//
//	users:
//	  - email: demo@example.com
//	    password: DemoPass123!
//	    name: Demo User
//	    reports:
//	      - weekStart: 2025-01-06
//	        bloodSugar: 92.5
//	        systolicBp: 118
//	        diastolicBp: 76
//	        jaundiceIndex: 0.8

type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Email    string          `yaml:"email"`
	Password string          `yaml:"password"`
	Name     string          `yaml:"name"`
	Reports  []FixtureReport `yaml:"reports"`
}

type FixtureReport struct {
	WeekStart     string   `yaml:"weekStart"`
	BloodSugar    *float64 `yaml:"bloodSugar"`
	SystolicBp    *int     `yaml:"systolicBp"`
	DiastolicBp   *int     `yaml:"diastolicBp"`
	JaundiceIndex *float64 `yaml:"jaundiceIndex"`
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *fixturePath == "" {
		fatalf("--fixture is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		fatalf("fixture error: %v", err)
	}
	if err := validateFixture(fixture); err != nil {
		fatalf("fixture validation failed: %v", err)
	}

	fmt.Printf("Loaded %d users from %s\n", len(fixture.Users), *fixturePath)

	if *dryRun {
		for _, u := range fixture.Users {
			fmt.Printf("  %s (%s): %d reports\n", u.Email, u.Name, len(u.Reports))
		}
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	for _, u := range fixture.Users {
		userID, inserted, err := seedUser(ctx, db, u)
		if err != nil {
			fatalf("seed user %s: %v", u.Email, err)
		}
		if inserted {
			fmt.Printf("Created user %s\n", u.Email)
		} else {
			fmt.Printf("User %s already exists, reusing\n", u.Email)
		}

		for _, rep := range u.Reports {
			if err := seedReport(ctx, db, userID, rep); err != nil {
				fatalf("seed report %s/%s: %v", u.Email, rep.WeekStart, err)
			}
		}
		if len(u.Reports) > 0 {
			fmt.Printf("Upserted %d reports for %s\n", len(u.Reports), u.Email)
		}
	}

	fmt.Println("Seeding complete.")
}

func loadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validateFixture(f *Fixture) error {
	if len(f.Users) == 0 {
		return fmt.Errorf("no users in fixture")
	}
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" || u.Name == "" {
			return fmt.Errorf("user %d: email, password, and name are required", i)
		}
		for _, rep := range u.Reports {
			if _, err := time.Parse("2006-01-02", rep.WeekStart); err != nil {
				return fmt.Errorf("user %s: bad weekStart %q", u.Email, rep.WeekStart)
			}
		}
	}
	return nil
}

// seedUser inserts the user unless the email is taken, returning the row id
// either way.
func seedUser(ctx context.Context, db *sql.DB, u FixtureUser) (string, bool, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", false, err
	}

	var id string
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id`,
		uuid.NewString(), u.Email, string(hashed), u.Name,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if err != sql.ErrNoRows {
		return "", false, err
	}

	// Conflict arm: look the existing row up.
	err = db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, u.Email).Scan(&id)
	return id, false, err
}

func seedReport(ctx context.Context, db *sql.DB, userID string, rep FixtureReport) error {
	weekStart, err := time.Parse("2006-01-02", rep.WeekStart)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO reports (id, user_id, week_start, blood_sugar, systolic_bp, diastolic_bp, jaundice_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			blood_sugar    = EXCLUDED.blood_sugar,
			systolic_bp    = EXCLUDED.systolic_bp,
			diastolic_bp   = EXCLUDED.diastolic_bp,
			jaundice_index = EXCLUDED.jaundice_index`,
		uuid.NewString(), userID, weekStart, rep.BloodSugar, rep.SystolicBp, rep.DiastolicBp, rep.JaundiceIndex,
	)
	return err
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
