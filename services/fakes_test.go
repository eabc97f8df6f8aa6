package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// In-memory stores mirroring the Mongo implementations' semantics: set
// mutations dedupe, counts always equal the set size, inactive posts are
// invisible to the active read paths.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // by userid
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username || u.UserID == user.UserID {
			return stores.ErrDuplicate
		}
	}
	cp := *user
	s.users[user.UserID] = &cp
	return nil
}

func (s *fakeUserStore) findBy(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.UserID == userID })
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email })
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Username == username })
}

func (s *fakeUserStore) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email || u.Username == username })
}

func (s *fakeUserStore) UpdateAccount(_ context.Context, userID string, upd stores.AccountUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	for id, other := range s.users {
		if id == userID {
			continue
		}
		if upd.Username != nil && other.Username == *upd.Username {
			return nil, stores.ErrDuplicate
		}
		if upd.Email != nil && other.Email == *upd.Email {
			return nil, stores.ErrDuplicate
		}
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = *upd.PhoneNumber
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Search(_ context.Context, query string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := []models.User{}
	for _, u := range s.users {
		if !u.IsActive {
			continue
		}
		if containsFold(u.Username, query) || containsFold(u.Email, query) {
			results = append(results, *u)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Username < results[j].Username })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*models.Profile{}}
}

func (s *fakeProfileStore) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *p
	cp.Following = append([]string{}, p.Following...)
	cp.Followers = append([]string{}, p.Followers...)
	return &cp, nil
}

func (s *fakeProfileStore) EnsureExists(_ context.Context, userID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		s.profiles[userID] = models.NewProfile(userID, username)
	}
	return nil
}

func (s *fakeProfileStore) UpdateData(_ context.Context, userID string, upd stores.ProfileDataUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	if upd.Username != nil {
		p.Username = *upd.Username
	}
	if upd.DisplayPicture != nil {
		p.DisplayPicture = *upd.DisplayPicture
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Profession != nil {
		p.Profession = *upd.Profession
	}
	if upd.DateOfBirth != nil {
		p.DateOfBirth = upd.DateOfBirth
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.RelationshipStatus != nil {
		p.RelationshipStatus = *upd.RelationshipStatus
	}
	if upd.SocialMediaLinks != nil {
		p.SocialMediaLinks = upd.SocialMediaLinks
	}
	if upd.IsProfileComplete != nil {
		p.IsProfileComplete = *upd.IsProfileComplete
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) AddFollowEdge(_ context.Context, actorID, targetID string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.profiles[actorID]
	if !ok {
		return 0, 0, stores.ErrNotFound
	}
	actor.Following = addToSet(actor.Following, targetID)

	target, ok := s.profiles[targetID]
	if !ok {
		return len(actor.Following), 0, stores.ErrNotFound
	}
	target.Followers = addToSet(target.Followers, actorID)
	return len(actor.Following), len(target.Followers), nil
}

func (s *fakeProfileStore) RemoveFollowEdge(_ context.Context, actorID, targetID string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.profiles[actorID]
	if !ok {
		return 0, 0, stores.ErrNotFound
	}
	actor.Following = removeFromSet(actor.Following, targetID)

	target, ok := s.profiles[targetID]
	if !ok {
		return len(actor.Following), 0, stores.ErrNotFound
	}
	target.Followers = removeFromSet(target.Followers, actorID)
	return len(actor.Following), len(target.Followers), nil
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]*models.Post{}}
}

func (s *fakePostStore) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := clonePost(post)
	s.posts[post.ID] = cp
	return nil
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *fakePostStore) FindActiveByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *fakePostStore) FindActiveByAuthors(_ context.Context, authorIDs []string, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	authors := map[string]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	results := []models.Post{}
	for _, p := range s.posts {
		if p.IsActive && authors[p.UserID] {
			results = append(results, *clonePost(p))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *fakePostStore) ToggleLike(_ context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	if p.Likes.Has(userID) {
		p.Likes.Users = removeFromSet(p.Likes.Users, userID)
	} else {
		p.Likes.Users = addToSet(p.Likes.Users, userID)
	}
	p.Likes.Count = len(p.Likes.Users)
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (s *fakePostStore) AddShare(_ context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	p.Shares.Users = addToSet(p.Shares.Users, userID)
	p.Shares.Count = len(p.Shares.Users)
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (s *fakePostStore) AppendComment(_ context.Context, id primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (s *fakePostStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return stores.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakePostStore) Search(_ context.Context, query string, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := []models.Post{}
	for _, p := range s.posts {
		if p.IsActive && containsFold(p.TextMsg, query) {
			results = append(results, *clonePost(p))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type fakeOTPStore struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{challenges: map[string]*models.OTPChallenge{}}
}

func (s *fakeOTPStore) Insert(_ context.Context, challenge *models.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[challenge.Email]; ok {
		return stores.ErrDuplicate
	}
	cp := *challenge
	s.challenges[challenge.Email] = &cp
	return nil
}

func (s *fakeOTPStore) FindByEmail(_ context.Context, email string) (*models.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[email]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeOTPStore) DeleteByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, email)
	return nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // emails
	codes map[string]string
	fail  bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}}
}

func (m *fakeMailer) SendOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, email)
	m.codes[email] = code
	return nil
}

func addToSet(set []string, value string) []string {
	for _, v := range set {
		if v == value {
			return set
		}
	}
	return append(set, value)
}

func removeFromSet(set []string, value string) []string {
	out := set[:0]
	for _, v := range set {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Comments = append([]models.Comment{}, p.Comments...)
	cp.Likes.Users = append([]string{}, p.Likes.Users...)
	cp.Shares.Users = append([]string{}, p.Shares.Users...)
	return &cp
}
