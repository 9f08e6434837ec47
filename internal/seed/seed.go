// Package seed populates an empty store with demonstration owners, a login
// for the first owner, and a small property catalog.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/million/internal/domain"
)

const (
	DemoEmail    = "owner@test.com"
	DemoPassword = "TestPassword123!"
)

// Hasher produces a stored password hash.
type Hasher interface {
	Hash(plain string) (string, error)
}

type ownerSeed struct {
	name, address, photo, birthday string
}

var owners = []ownerSeed{
	{"Test Owner", "123 Main Street, Test City, TC 12345", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face", "1980-01-15"},
	{"John Smith", "456 Oak Avenue, Real City, RC 54321", "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face", "1975-06-20"},
	{"Sarah Johnson", "789 Pine Street, Property Town, PT 98765", "https://images.unsplash.com/photo-1494790108755-2616b612b765?w=150&h=150&fit=crop&crop=face", "1985-03-10"},
}

type propertySeed struct {
	owner       int
	name        string
	description string
	address     string
	price       float64
	year        int
	images      []string
}

var catalog = []propertySeed{
	{
		owner:       0,
		name:        "Casa Moderna en Zona Norte",
		description: "Three-storey house with luxury finishes in the north sector, private garden and a two-car garage.",
		address:     "Calle 127 #15-23, Zona Norte, Bogotá",
		price:       850000000,
		year:        2018,
		images: []string{
			"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800",
			"https://images.unsplash.com/photo-1565182999561-18d7dc61c393?w=800",
			"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800",
		},
	},
	{
		owner:       1,
		name:        "Apartamento Vista Panorámica",
		description: "18th-floor apartment with a panoramic city view in the financial district.",
		address:     "Carrera 11 #93-45, Chapinero, Bogotá",
		price:       650000000,
		year:        2020,
		images:      []string{"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800"},
	},
	{
		owner:       2,
		name:        "Casa Campestre con Piscina",
		description: "Country house with pool, barbecue area and wide gardens outside the city.",
		address:     "Vereda Los Pinos, Km 5 Vía La Calera",
		price:       1200000000,
		year:        2015,
		images:      []string{"https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800"},
	},
	{
		owner:       0,
		name:        "Penthouse de Lujo",
		description: "Two-level penthouse with private terrace, jacuzzi and a 360° view.",
		address:     "Avenida 19 #103-85, Zona Rosa, Bogotá",
		price:       2100000000,
		year:        2021,
		images:      []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800"},
	},
	{
		owner:       1,
		name:        "Casa Tradicional Centro Histórico",
		description: "Restored colonial house in the historic center.",
		address:     "Calle 12 #3-45, La Candelaria, Bogotá",
		price:       450000000,
		year:        1952,
		images:      []string{"https://images.unsplash.com/photo-1518780664697-55e3ad937233?w=800"},
	},
	{
		owner:       0,
		name:        "Apartamento Familiar",
		description: "Three-bedroom apartment in a complex with pool, gym and social hall.",
		address:     "Carrera 68D #25B-78, Kennedy, Bogotá",
		price:       320000000,
		year:        2019,
		images:      []string{"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800"},
	},
}

// Run seeds repos when no owners exist yet. It reports whether data was
// written.
func Run(ctx context.Context, repos domain.Repositories, hasher Hasher, logger *slog.Logger) (bool, error) {
	existing, err := repos.Owners.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("check owners: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped", "owners", len(existing))
		return false, nil
	}

	created := make([]*domain.Owner, 0, len(owners))
	for _, s := range owners {
		birthday, err := time.Parse(time.DateOnly, s.birthday)
		if err != nil {
			return false, fmt.Errorf("parse birthday: %w", err)
		}
		o, err := domain.NewOwner(s.name, s.address, s.photo, birthday)
		if err != nil {
			return false, fmt.Errorf("build owner %s: %w", s.name, err)
		}
		if err := repos.Owners.Add(ctx, o); err != nil {
			return false, fmt.Errorf("add owner %s: %w", s.name, err)
		}
		created = append(created, o)
	}

	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return false, fmt.Errorf("hash demo password: %w", err)
	}
	user, err := domain.NewUser(DemoEmail, hash, domain.RoleOwner, "Test", "Owner", &created[0].ID)
	if err != nil {
		return false, fmt.Errorf("build demo user: %w", err)
	}
	if err := repos.Users.Add(ctx, user); err != nil {
		return false, fmt.Errorf("add demo user: %w", err)
	}

	var first *domain.Property
	for _, s := range catalog {
		p, err := domain.NewProperty(created[s.owner].ID, s.name, s.description, s.address, s.price, s.year)
		if err != nil {
			return false, fmt.Errorf("build property %s: %w", s.name, err)
		}

		imgs := make([]domain.PropertyImage, 0, len(s.images))
		for _, file := range s.images {
			img, err := domain.NewPropertyImage(p.ID, file, true)
			if err != nil {
				return false, err
			}
			imgs = append(imgs, *img)
		}

		if err := repos.Properties.Add(ctx, p, imgs...); err != nil {
			return false, fmt.Errorf("add property %s: %w", s.name, err)
		}
		if first == nil {
			first = p
		}
	}

	now := time.Now().UTC()
	traces := []struct {
		at         time.Time
		name       string
		value, tax float64
	}{
		{now.AddDate(-5, 0, 0), "Compra inicial", 650000000, 750000000},
		{now.AddDate(-2, 0, 0), "Venta a propietario", 750000000, 850000000},
	}
	for _, t := range traces {
		trace, err := domain.NewPropertyTrace(first.ID, t.at, t.name, t.value, t.tax)
		if err != nil {
			return false, err
		}
		if err := repos.Traces.Add(ctx, trace); err != nil {
			return false, fmt.Errorf("add trace: %w", err)
		}
	}

	logger.Info(
		"seed complete",
		"owners", len(created),
		"properties", len(catalog),
		"user", DemoEmail,
	)
	return true, nil
}
