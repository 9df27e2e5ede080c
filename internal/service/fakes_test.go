package service

import (
	"context"
	"strings"
	"sync"

	"mediarate/internal/models"
	"mediarate/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the real repositories' contract:
// misses return gorm.ErrRecordNotFound, duplicate keys return
// repository.ErrDuplicateKey, and reads hand out copies so callers mutate
// nothing until they Update.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles []models.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == profile.UserID {
			return repository.ErrDuplicateKey
		}
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	f.profiles = append(f.profiles, *profile)
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.profiles {
		if f.profiles[i].ID == profile.ID {
			f.profiles[i] = *profile
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) GetByOwner(_ context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			p := f.profiles[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) List(_ context.Context) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

type fakeMediaRepo struct {
	mu      sync.Mutex
	entries []models.MediaEntry
}

func (f *fakeMediaRepo) Create(_ context.Context, entry *models.MediaEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == entry.ID && entry.ID != "" {
			return repository.ErrDuplicateKey
		}
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeMediaRepo) Update(_ context.Context, entry *models.MediaEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMediaRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMediaRepo) GetByID(_ context.Context, id string) (*models.MediaEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMediaRepo) GetByCreator(_ context.Context, userID string) ([]models.MediaEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MediaEntry
	for _, e := range f.entries {
		if e.CreatedBy == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) GetByTitle(_ context.Context, title string) ([]models.MediaEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MediaEntry
	for _, e := range f.entries {
		if containsFold(e.Title, title) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) List(_ context.Context, filter repository.MediaFilter) ([]models.MediaEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MediaEntry
	for _, e := range f.entries {
		if filter.Genre != "" && e.Genre != filter.Genre {
			continue
		}
		if filter.MediaType != "" && e.MediaType != filter.MediaType {
			continue
		}
		if filter.AgeRestriction != "" && e.AgeRestriction != filter.AgeRestriction {
			continue
		}
		if filter.ReleaseYear != 0 && e.ReleaseYear != filter.ReleaseYear {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type likeKey struct {
	ratingID string
	userID   string
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []models.Rating
	likes   map[likeKey]bool
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{likes: make(map[likeKey]bool)}
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.MediaEntryID == rating.MediaEntryID && r.UserID == rating.UserID {
			return repository.ErrDuplicateKey
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	f.ratings = append(f.ratings, *rating)
	return nil
}

func (f *fakeRatingRepo) Update(_ context.Context, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ratings {
		if f.ratings[i].ID == rating.ID {
			f.ratings[i] = *rating
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.likes {
		if key.ratingID == id {
			delete(f.likes, key)
		}
	}
	for i := range f.ratings {
		if f.ratings[i].ID == id {
			f.ratings = append(f.ratings[:i], f.ratings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id string) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ratings {
		if f.ratings[i].ID == id {
			r := f.ratings[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) GetByCreator(_ context.Context, userID string) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Rating
	for _, r := range f.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) GetByMedia(_ context.Context, mediaID string) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Rating
	for _, r := range f.ratings {
		if r.MediaEntryID == mediaID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) GetByMediaAndUser(_ context.Context, mediaID, userID string) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ratings {
		if f.ratings[i].MediaEntryID == mediaID && f.ratings[i].UserID == userID {
			r := f.ratings[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) ApprovedByMedia(_ context.Context, mediaID string) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Rating
	for _, r := range f.ratings {
		if r.MediaEntryID == mediaID && r.PublicVisible {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) GetByStarsAtLeast(_ context.Context, stars int) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Rating
	for _, r := range f.ratings {
		if r.Stars >= stars {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) GetByStarsAtMost(_ context.Context, stars int) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Rating
	for _, r := range f.ratings {
		if r.Stars <= stars {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) AverageStars(_ context.Context, mediaID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum, count := 0, 0
	for _, r := range f.ratings {
		if r.MediaEntryID == mediaID {
			sum += r.Stars
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeRatingRepo) AddLike(_ context.Context, ratingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{ratingID: ratingID, userID: userID}
	if f.likes[key] {
		return repository.ErrDuplicateKey
	}
	f.likes[key] = true
	return nil
}

func (f *fakeRatingRepo) RemoveLike(_ context.Context, ratingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{ratingID: ratingID, userID: userID}
	if !f.likes[key] {
		return gorm.ErrRecordNotFound
	}
	delete(f.likes, key)
	return nil
}

func (f *fakeRatingRepo) HasLike(_ context.Context, ratingID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[likeKey{ratingID: ratingID, userID: userID}], nil
}

func (f *fakeRatingRepo) LikedBy(_ context.Context, ratingID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for key := range f.likes {
		if key.ratingID == ratingID {
			out = append(out, key.userID)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) List(_ context.Context) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Rating, len(f.ratings))
	copy(out, f.ratings)
	return out, nil
}

// fakeTxRunner runs the closure against the live fakes. It gives no rollback,
// which is fine for the happy paths the service tests exercise.
type fakeTxRunner struct {
	repos *repository.Repos
}

func (f *fakeTxRunner) InTx(_ context.Context, fn func(r *repository.Repos) error) error {
	return fn(f.repos)
}

// fixture bundles the fakes and the services under test.
type fixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	media    *fakeMediaRepo
	ratings  *fakeRatingRepo
	tx       *fakeTxRunner

	stats         *StatsService
	ratingService *RatingService
	mediaService  *MediaService
}

func newFixture() *fixture {
	users := &fakeUserRepo{}
	profiles := &fakeProfileRepo{}
	media := &fakeMediaRepo{}
	ratings := newFakeRatingRepo()
	tx := &fakeTxRunner{repos: &repository.Repos{
		Users:    users,
		Profiles: profiles,
		Media:    media,
		Ratings:  ratings,
	}}

	stats := NewStatsService(profiles, ratings, media)
	return &fixture{
		users:         users,
		profiles:      profiles,
		media:         media,
		ratings:       ratings,
		tx:            tx,
		stats:         stats,
		ratingService: NewRatingService(ratings, media, profiles, stats),
		mediaService:  NewMediaService(media, profiles, tx, stats),
	}
}

// seedUser creates a user with an empty profile and returns the user id.
func (f *fixture) seedUser(username string) string {
	user := &models.User{Username: username, PasswordDigest: "x"}
	if err := f.users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	profile := &models.Profile{UserID: user.ID}
	if err := f.profiles.Create(context.Background(), profile); err != nil {
		panic(err)
	}
	return user.ID
}

// seedMedia creates an entry and returns its id.
func (f *fixture) seedMedia(title, genre string, mediaType models.MediaType, creatorID string) string {
	entry := &models.MediaEntry{
		Title:          title,
		Genre:          genre,
		MediaType:      mediaType,
		ReleaseYear:    2020,
		AgeRestriction: models.FSK12,
		CreatedBy:      creatorID,
	}
	if err := f.media.Create(context.Background(), entry); err != nil {
		panic(err)
	}
	return entry.ID
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
