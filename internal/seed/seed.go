// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"vibehub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a realistic social mesh: users, a
// follow graph with pending and accepted edges, posts, engagement and a
// few DM threads.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, saves, shares, comments, posts, follow_edges,
		messages, conversation_participants, conversations, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed runs the full pipeline.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	if err := s.SeedFollowGraph(users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.SeedEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := s.SeedConversations(users); err != nil {
		return fmt.Errorf("failed to create conversations: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUsers creates count verified users, roughly a quarter of them
// private. A few fixed accounts come first so logins stay predictable
// across reseeds.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	if count >= 3 {
		for _, name := range []string{"vibe", "hub", "test"} {
			name := name
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		private := s.factory.r.Float32() < 0.25
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Private = private
		})
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedFollowGraph connects each user to a handful of others. Edges toward
// private targets land pending, mirroring the follow state machine.
func (s *Seeder) SeedFollowGraph(users []*models.User) error {
	for _, follower := range users {
		degree := 2 + s.factory.r.Intn(6)
		for j := 0; j < degree; j++ {
			target := users[s.factory.r.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			status := models.ConnectionStatusAccepted
			if target.Private && s.factory.r.Float32() < 0.5 {
				status = models.ConnectionStatusPending
			}
			if err := s.factory.CreateFollow(follower, target, status); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedPosts creates count posts spread over the user base.
func (s *Seeder) SeedPosts(users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[s.factory.r.Intn(len(users))]
		post, err := s.factory.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

// SeedEngagement sprinkles likes, saves, shares and comments over the posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likes := s.factory.r.Intn(8)
		for i := 0; i < likes; i++ {
			user := users[s.factory.r.Intn(len(users))]
			if err := s.factory.CreateLike(user, post); err != nil {
				return err
			}
		}

		if s.factory.r.Float32() < 0.3 {
			user := users[s.factory.r.Intn(len(users))]
			if err := s.factory.CreateSave(user, post); err != nil {
				return err
			}
		}
		if s.factory.r.Float32() < 0.15 {
			user := users[s.factory.r.Intn(len(users))]
			if err := s.factory.CreateShare(user, post); err != nil {
				return err
			}
		}

		comments := s.factory.r.Intn(4)
		for i := 0; i < comments; i++ {
			user := users[s.factory.r.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedConversations gives a tenth of the user base a DM thread with a few
// messages each way.
func (s *Seeder) SeedConversations(users []*models.User) error {
	pairs := len(users) / 10
	for i := 0; i < pairs; i++ {
		a := users[s.factory.r.Intn(len(users))]
		b := users[s.factory.r.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}

		conv, err := s.factory.CreateConversation(a, b)
		if err != nil {
			return err
		}

		messages := 2 + s.factory.r.Intn(8)
		for j := 0; j < messages; j++ {
			sender := a
			if j%2 == 1 {
				sender = b
			}
			if _, err := s.factory.CreateMessage(conv, sender); err != nil {
				return err
			}
		}
	}
	return nil
}
