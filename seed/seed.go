// Package seed creates generated sample data for development
// environments. It runs at startup when SEED_DATA is enabled and is
// never meant for production databases.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/craftmarket/api/models"
)

// Options control how much sample data Run creates.
type Options struct {
	Users            int
	PostsPerUser     int
	ReviewsPerPost   int
	FavoritesPerUser int
}

// DefaultOptions is the preset used at startup.
func DefaultOptions() Options {
	return Options{Users: 10, PostsPerUser: 3, ReviewsPerPost: 2, FavoritesPerUser: 5}
}

// Run populates the database with generated users, posts, reviews and
// favorites.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := BuildUser()
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	var posts []*models.Post
	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			p := BuildPost(u, r)
			if err := db.Create(p).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, p)
		}
	}

	for _, p := range posts {
		for i := 0; i < opts.ReviewsPerPost; i++ {
			rev := BuildReview(users[r.Intn(len(users))], p, r)
			if err := db.Create(rev).Error; err != nil {
				return fmt.Errorf("seed review: %w", err)
			}
		}
	}

	for _, u := range users {
		for _, p := range pickPosts(r, posts, opts.FavoritesPerUser) {
			fav := &models.Favorite{UserID: u.ID, PostID: p.ID}
			if err := db.Create(fav).Error; err != nil {
				return fmt.Errorf("seed favorite: %w", err)
			}
		}
	}
	return nil
}

// BuildUser constructs an unsaved sample user. Identity fields carry
// random digits so small batches stay collision-free.
func BuildUser() *models.User {
	return &models.User{
		GoogleID:    gofakeit.UUID(),
		PhoneNumber: "+1" + gofakeit.Numerify("##########"),
		Email:       fmt.Sprintf("%s.%d@%s", gofakeit.Username(), gofakeit.Number(1000, 9999), gofakeit.DomainName()),
		Name:        gofakeit.Name(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
}

// BuildPost constructs an unsaved sample post authored by user.
func BuildPost(user *models.User, r *rand.Rand) *models.Post {
	post := &models.Post{
		UserID:   user.ID,
		Title:    clamp(gofakeit.ProductName(), 50),
		Content:  gofakeit.Paragraph(1, 3, 8, " "),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%d/800/800", gofakeit.Number(1, 1_000_000)),
	}

	all := models.Categories()
	r.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if n := r.Intn(4); n > 0 {
		post.Categories = models.CategoryList(all[:n])
	}

	switch r.Intn(3) {
	case 0:
		status := models.StatusSold
		post.Status = &status
	case 1:
		status := models.StatusInStock
		post.Status = &status
	}

	if r.Intn(2) == 0 {
		post.PaymentToken = "tok_" + gofakeit.LetterN(24)
	}
	return post
}

// BuildReview constructs an unsaved sample review on post by user.
func BuildReview(user *models.User, post *models.Post, r *rand.Rand) *models.Review {
	rev := &models.Review{
		UserID: user.ID,
		PostID: post.ID,
		Rating: gofakeit.Number(1, 5),
	}
	if r.Intn(4) > 0 {
		rev.Message = gofakeit.Sentence(12)
	}
	return rev
}

// pickPosts returns up to n distinct posts, keeping (user, post)
// favorite pairs unique.
func pickPosts(r *rand.Rand, posts []*models.Post, n int) []*models.Post {
	if n > len(posts) {
		n = len(posts)
	}
	idx := r.Perm(len(posts))
	out := make([]*models.Post, 0, n)
	for _, i := range idx[:n] {
		out = append(out, posts[i])
	}
	return out
}

// clamp trims s to at most limit characters, never splitting a rune.
func clamp(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit])
	}
	return s
}
