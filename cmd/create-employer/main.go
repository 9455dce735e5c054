// Command-line tool to create an employer account.
// A blank password generates a random one, which is printed once.
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

type employerInput struct {
	Name      string `validate:"required,min=2"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Generated bool
}

var errPasswordMismatch = errors.New("passwords do not match")

// generatePassword creates a random hex string of 2n characters
func generatePassword(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readEmployer asks for the account details and validates them.
func readEmployer(r *bufio.Reader, w io.Writer) (employerInput, error) {
	var in employerInput
	var err error

	if in.Name, err = prompt(r, w, "Enter company or employer name: "); err != nil {
		return in, err
	}
	if in.Email, err = prompt(r, w, "Enter email: "); err != nil {
		return in, err
	}
	in.Email = strings.ToLower(in.Email)

	if in.Password, err = prompt(r, w, "Enter password (blank to generate): "); err != nil {
		return in, err
	}
	if in.Password == "" {
		if in.Password, err = generatePassword(8); err != nil {
			return in, err
		}
		in.Generated = true
	} else {
		confirm, err := prompt(r, w, "Confirm password: ")
		if err != nil {
			return in, err
		}
		if confirm != in.Password {
			return in, errPasswordMismatch
		}
	}

	return in, validator.New().Struct(in)
}

func main() {
	fmt.Println("Creating employer account")

	in, err := readEmployer(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid employer details")
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database failed to initialize")
	}
	defer func() { _ = db.Close() }()

	hashed, err := utilities.HashPassword(in.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	employer := model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Role:     model.RoleEmployer,
	}
	if err := db.Create(&employer).Error; err != nil {
		if database.IsUniqueViolation(err) {
			log.Fatal().Str("email", in.Email).Msg("email already registered")
		}
		log.Fatal().Err(err).Msg("failed to create employer")
	}

	fmt.Println("Employer created successfully!")
	fmt.Println("======================================")
	fmt.Printf("ID:    %s\n", employer.ID)
	fmt.Printf("Email: %s\n", employer.Email)
	if in.Generated {
		fmt.Printf("Password: %s\n", in.Password)
	}
	fmt.Println("======================================")
}
