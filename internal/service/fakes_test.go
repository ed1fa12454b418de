// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/models"
)

// The fake stores keep documents in maps and run the same BeforeSave
// hooks as the Mongo stores, so service tests exercise the storage
// rules (ban threshold, caps, join-request allocation) for real.
// Documents are deep-copied through BSON on the way in and out to
// mimic the isolation of a real round trip.

func mustClone[T any](v *T) *T {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := bson.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	return out
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return mustClone(u), nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return mustClone(u), nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeUserStore) FindAll(_ context.Context, limit, skip int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		out = append(out, *mustClone(u))
	}
	return paginate(out, limit, skip), nil
}

func (s *fakeUserStore) Save(_ context.Context, u *models.User) error {
	if err := u.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = mustClone(u)
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) Search(_ context.Context, term string, limit, skip int64) ([]models.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserSummary
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(term)) {
			out = append(out, models.UserSummary{
				ID:             u.ID,
				Username:       u.Username,
				ProfilePicture: u.ProfilePicture,
				Age:            u.Age,
				Gender:         u.Gender,
			})
		}
	}
	return paginate(out, limit, skip), nil
}

type fakeGroupStore struct {
	mu     sync.Mutex
	groups map[primitive.ObjectID]*models.Group
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[primitive.ObjectID]*models.Group)}
}

func (s *fakeGroupStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return mustClone(g), nil
}

func (s *fakeGroupStore) FindAll(_ context.Context, limit, skip int64) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Group
	for _, g := range s.groups {
		out = append(out, *mustClone(g))
	}
	return paginate(out, limit, skip), nil
}

func (s *fakeGroupStore) Save(_ context.Context, g *models.Group) error {
	if err := g.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
		g.CreatedAt = time.Now().UTC()
	}
	s.groups[g.ID] = mustClone(g)
	return nil
}

func (s *fakeGroupStore) Search(_ context.Context, term string, limit, skip int64) ([]models.GroupSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GroupSummary
	for _, g := range s.groups {
		if strings.Contains(strings.ToLower(g.GroupName), strings.ToLower(term)) {
			out = append(out, models.GroupSummary{ID: g.ID, GroupName: g.GroupName, GroupCover: g.GroupCover})
		}
	}
	return paginate(out, limit, skip), nil
}

type fakePageStore struct {
	mu    sync.Mutex
	pages map[primitive.ObjectID]*models.Page
}

func newFakePageStore() *fakePageStore {
	return &fakePageStore{pages: make(map[primitive.ObjectID]*models.Page)}
}

func (s *fakePageStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return mustClone(p), nil
}

func (s *fakePageStore) FindAll(_ context.Context, limit, skip int64) ([]models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Page
	for _, p := range s.pages {
		out = append(out, *mustClone(p))
	}
	return paginate(out, limit, skip), nil
}

func (s *fakePageStore) Save(_ context.Context, p *models.Page) error {
	if err := p.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = time.Now().UTC()
	}
	s.pages[p.ID] = mustClone(p)
	return nil
}

func (s *fakePageStore) Search(_ context.Context, term string, limit, skip int64) ([]models.PageSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PageSummary
	for _, p := range s.pages {
		if strings.Contains(strings.ToLower(p.PageName), strings.ToLower(term)) {
			out = append(out, models.PageSummary{ID: p.ID, PageName: p.PageName, PageCover: p.PageCover})
		}
	}
	return paginate(out, limit, skip), nil
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return mustClone(p), nil
}

func (s *fakePostStore) FindByCreator(_ context.Context, creator primitive.ObjectID, limit, skip int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.CreatedBy == creator {
			out = append(out, *mustClone(p))
		}
	}
	return paginate(out, limit, skip), nil
}

func (s *fakePostStore) FindByIDs(_ context.Context, ids []primitive.ObjectID, limit, skip int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, id := range ids {
		if p, ok := s.posts[id]; ok {
			out = append(out, *mustClone(p))
		}
	}
	return paginate(out, limit, skip), nil
}

func (s *fakePostStore) Save(_ context.Context, p *models.Post) error {
	if err := p.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = time.Now().UTC()
	}
	s.posts[p.ID] = mustClone(p)
	return nil
}

type fakeChatStore struct {
	mu    sync.Mutex
	chats map[primitive.ObjectID]*models.Chat
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: make(map[primitive.ObjectID]*models.Chat)}
}

func (s *fakeChatStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return mustClone(c), nil
}

func (s *fakeChatStore) FindByParticipants(_ context.Context, a, b primitive.ObjectID) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.HasParticipant(a) && c.HasParticipant(b) {
			return mustClone(c), nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeChatStore) FindForUser(_ context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Chat
	for _, c := range s.chats {
		if c.HasParticipant(userID) {
			out = append(out, *mustClone(c))
		}
	}
	return out, nil
}

func (s *fakeChatStore) Save(_ context.Context, c *models.Chat) error {
	if err := c.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.chats[c.ID] = mustClone(c)
	return nil
}

func paginate[T any](items []T, limit, skip int64) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}

// testEnv bundles the services under test with their backing fakes so
// tests can inspect stored state directly.
type testEnv struct {
	svc    *Services
	users  *fakeUserStore
	groups *fakeGroupStore
	pages  *fakePageStore
	posts  *fakePostStore
	chats  *fakeChatStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens, err := auth.NewJWTManager(&config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	env := &testEnv{
		users:  newFakeUserStore(),
		groups: newFakeGroupStore(),
		pages:  newFakePageStore(),
		posts:  newFakePostStore(),
		chats:  newFakeChatStore(),
	}
	env.svc = New(Stores{
		Users:  env.users,
		Groups: env.groups,
		Pages:  env.pages,
		Posts:  env.posts,
		Chats:  env.chats,
	}, tokens, auth.NewHasher(4))
	return env
}

// addUser stores a minimal account and returns its id.
func (e *testEnv) addUser(t *testing.T, username string) primitive.ObjectID {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Age:      30,
		Gender:   "female",
	}
	if err := e.users.Save(context.Background(), u); err != nil {
		t.Fatalf("save user %s: %v", username, err)
	}
	return u.ID
}

// wantAppErr asserts that err is an AppError with the given message.
func wantAppErr(t *testing.T, err error, message string) *apperr.AppError {
	t.Helper()
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AppError %q, got %v", message, err)
	}
	if ae.Message != message {
		t.Fatalf("message = %q, want %q", ae.Message, message)
	}
	return ae
}

// mustUser reloads a stored account.
func (e *testEnv) mustUser(t *testing.T, id primitive.ObjectID) *models.User {
	t.Helper()
	u, err := e.users.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return u
}
