package services

import (
	"context"
	"fmt"
	"log/slog"

	"invitationgallery/internal/domain"
)

// Default seed values.
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
	SeedTelegramLink  = "https://t.me"
)

type sampleInvitation struct {
	kind        string
	title       string
	description string
	price       int
}

var sampleInvitations = []sampleInvitation{
	{"wedding", "Elegant Wedding Invitation", "A beautiful wedding invitation featuring soft pastel pink and gold accents with delicate floral borders. Perfect for romantic and sophisticated celebrations.", 45},
	{"birthday", "Modern Birthday Party", "Contemporary birthday invitation with bold geometric shapes in teal and coral colors. Vibrant, fun, and perfect for modern celebrations.", 25},
	{"corporate", "Luxurious Corporate Event", "Sophisticated corporate invitation with deep navy blue and metallic gold color scheme. Features elegant Art Deco patterns for premium business events.", 65},
	{"rustic", "Rustic Outdoor Wedding", "Charming outdoor wedding invitation with earthy tones and watercolor wildflowers. Perfect for natural, organic celebrations.", 40},
	{"baby-shower", "Sweet Baby Shower", "Whimsical baby shower invitation featuring soft pastels and cute illustrated animals. Cheerful and sweet design for welcoming new arrivals.", 30},
	{"gala", "Black Tie Gala", "Elegant formal invitation with sophisticated black and champagne gold palette. Features ornate Victorian scrollwork for upscale events.", 75},
}

// Seeder fills an empty database with a default admin, the share link setting and sample invitations.
// Running it again changes nothing except re-asserting the share link.
type Seeder struct {
	Users       domain.AdminUserRepository
	Settings    domain.SettingRepository
	Invitations domain.InvitationRepository
	Hasher      domain.PasswordHasher
	Logger      *slog.Logger
}

// Run executes the seed steps in order and stops at the first error.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	if _, err := s.Settings.Upsert(ctx, domain.SettingKeyTelegramLink, SeedTelegramLink); err != nil {
		return fmt.Errorf("seed telegram link: %w", err)
	}
	s.Logger.InfoContext(ctx, "default setting ensured", "key", domain.SettingKeyTelegramLink)
	return s.seedInvitations(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	existing, err := s.Users.GetByUsername(ctx, SeedAdminUsername)
	if err != nil {
		return fmt.Errorf("seed admin lookup: %w", err)
	}
	if existing != nil {
		s.Logger.InfoContext(ctx, "admin user already exists", "username", SeedAdminUsername)
		return nil
	}
	hash, err := s.Hasher.Hash(SeedAdminPassword)
	if err != nil {
		return err
	}
	if err := s.Users.Create(ctx, &domain.AdminUser{Username: SeedAdminUsername, PasswordHash: hash}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.Logger.InfoContext(ctx, "created admin user", "username", SeedAdminUsername)
	return nil
}

func (s *Seeder) seedInvitations(ctx context.Context) error {
	existing, err := s.Invitations.List(ctx)
	if err != nil {
		return fmt.Errorf("seed invitations lookup: %w", err)
	}
	if len(existing) > 0 {
		s.Logger.InfoContext(ctx, "sample invitations already exist", "count", len(existing))
		return nil
	}
	for _, sample := range sampleInvitations {
		inv := domain.NewInvitation(sample.title, sample.description, sample.price, domain.SampleImageURL(sample.kind))
		if err := s.Invitations.Create(ctx, inv); err != nil {
			return fmt.Errorf("seed invitation %q: %w", sample.kind, err)
		}
	}
	s.Logger.InfoContext(ctx, "created sample invitations", "count", len(sampleInvitations))
	return nil
}
