package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/examdesk/examdesk-backend/internal/config"
	"github.com/examdesk/examdesk-backend/internal/database"
	"github.com/examdesk/examdesk-backend/internal/logger"
	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/examdesk/examdesk-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	superuser := flag.Bool("superuser", false, "Create a super admin with staff and superuser flags")
	roleFlag := flag.String("role", "", "Role for a regular account: examinee, admin or super_admin")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Only password hashing is used here, so no Redis client is needed.
	authService := service.NewAuthService(cfg, nil)
	userService := service.NewUserService(
		repository.NewUserRepository(pool),
		repository.NewTxManager(pool),
		authService,
		cfg.AllowSelfRoleChange,
		log,
	)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	if *superuser {
		fmt.Println("=== Create Superuser ===")
	} else {
		fmt.Println("=== Create User ===")
	}

	email := prompt(reader, "Email: ")
	if email == "" {
		fmt.Println("Error: Email is required")
		os.Exit(1)
	}

	password := promptPassword("Password: ")
	if password != promptPassword("Password (again): ") {
		fmt.Println("Error: Passwords do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	var user *model.User
	if *superuser {
		user, err = userService.CreateSuperuser(ctx, email, password)
	} else {
		role := *roleFlag
		if role == "" {
			role = prompt(reader, "Role [examinee]: ")
		}
		if role == "" {
			role = string(model.RoleExaminee)
		}
		parsed, perr := model.ParseRole(role)
		if perr != nil {
			fmt.Printf("Error: %v\n", perr)
			os.Exit(1)
		}

		user, err = userService.Register(ctx, service.NewUser{
			Email:     email,
			Password:  password,
			FirstName: prompt(reader, "First name: "),
			LastName:  prompt(reader, "Last name: "),
			Role:      parsed,
			IsStaff:   parsed != model.RoleExaminee,
		})
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		for field, msg := range ve.Fields {
			fmt.Printf("Error: %s: %s\n", field, msg)
		}
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! %s (%s) created with ID: %d\n", user.Email, user.Role, user.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	return string(raw)
}
