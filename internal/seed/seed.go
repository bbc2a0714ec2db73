// Package seed loads the initial users and products into a store. The
// default data set is embedded; callers may supply their own JSON files.
package seed

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
)

//go:embed data/*.json
var defaults embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// User is a seed account. Password is plain text and hashed on load.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Product struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Data is a full seed set.
type Data struct {
	Users    []User
	Products []Product
}

// Defaults returns the embedded seed set.
func Defaults() (Data, error) {
	var d Data
	if err := decodeEmbedded("data/users.json", &d.Users); err != nil {
		return Data{}, err
	}
	if err := decodeEmbedded("data/products.json", &d.Products); err != nil {
		return Data{}, err
	}
	return d, nil
}

// FromFiles reads users and products from the given paths. An empty path
// keeps the embedded default for that collection.
func FromFiles(usersPath, productsPath string) (Data, error) {
	d, err := Defaults()
	if err != nil {
		return Data{}, err
	}
	if usersPath != "" {
		d.Users = nil
		if err := decodeFile(usersPath, &d.Users); err != nil {
			return Data{}, err
		}
	}
	if productsPath != "" {
		d.Products = nil
		if err := decodeFile(productsPath, &d.Products); err != nil {
			return Data{}, err
		}
	}
	return d, nil
}

func decodeEmbedded(name string, v any) error {
	raw, err := defaults.ReadFile(name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return nil
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return nil
}

// Loader writes seed data through the repository ports. It applies the same
// normalisation as the API: trimmed names, parsed roles, hashed passwords and
// prices rounded to cents. Collections are expected to be empty.
type Loader struct {
	Users    ports.UserRepository
	Products ports.ProductRepository
	Hasher   ports.PasswordHasher
	Validate *validation.Validator
	Log      zerolog.Logger
}

// Result reports how many documents Load created.
type Result struct {
	Users    int
	Products int
}

// Load validates the whole set before writing anything, then creates
// products followed by users.
func (l *Loader) Load(ctx context.Context, d Data) (Result, error) {
	products := make([]*domain.Product, 0, len(d.Products))
	for i, p := range d.Products {
		prod := &domain.Product{
			Name:        p.Name,
			Price:       domain.RoundToCent(p.Price),
			Image:       p.Image,
			Description: p.Description,
		}
		if err := l.Validate.Validate(prod); err != nil {
			return Result{}, fmt.Errorf("seed: product %d: %w", i, err)
		}
		products = append(products, prod)
	}

	users := make([]*domain.User, 0, len(d.Users))
	for i, u := range d.Users {
		role := domain.RoleCustomer
		if u.Role != "" {
			parsed, err := domain.ParseRole(u.Role)
			if err != nil {
				return Result{}, fmt.Errorf("seed: user %d: %w", i, err)
			}
			role = parsed
		}

		hash, err := l.Hasher.Hash(u.Password)
		if err != nil {
			return Result{}, fmt.Errorf("seed: user %d: hash password: %w", i, err)
		}

		user := &domain.User{
			Name:         strings.TrimSpace(u.Name),
			Email:        domain.NormalizeEmail(u.Email),
			PasswordHash: hash,
			Role:         role,
		}
		if err := l.Validate.Validate(user); err != nil {
			return Result{}, fmt.Errorf("seed: user %d (%s): %w", i, u.Email, err)
		}
		users = append(users, user)
	}

	var res Result
	for _, p := range products {
		if _, err := l.Products.Create(ctx, p); err != nil {
			return res, fmt.Errorf("seed: create product %q: %w", p.Name, err)
		}
		res.Products++
	}
	l.Log.Info().Int("count", res.Products).Msg("created products")

	for _, u := range users {
		if _, err := l.Users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("seed: create user %q: %w", u.Email, err)
		}
		res.Users++
	}
	l.Log.Info().Int("count", res.Users).Msg("created users")

	return res, nil
}
