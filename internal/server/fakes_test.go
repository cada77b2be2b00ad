package server

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/types"
)

// In-memory store fakes. They mirror the db package's contracts: nil results
// for absent rows, db.ErrDuplicate for uniqueness violations.

type fakeUserStore struct {
	users  map[uuid.UUID]types.User
	hashes map[uuid.UUID]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[uuid.UUID]types.User),
		hashes: make(map[uuid.UUID]string),
	}
}

func (f *fakeUserStore) addUser(email, hash string, role types.Role) types.User {
	u := types.User{
		ID:        uuid.New(),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.users[u.ID] = u
	f.hashes[u.ID] = hash
	return u
}

func (f *fakeUserStore) CreateUser(_ context.Context, email, passwordHash, firstName, lastName string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, db.ErrDuplicate
		}
	}
	u := f.addUser(email, passwordHash, types.RoleUser)
	u.FirstName = firstName
	u.LastName = lastName
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*types.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserAuthByEmail(_ context.Context, email string) (*db.UserAuth, error) {
	for id, u := range f.users {
		if u.Email == email {
			return &db.UserAuth{User: u, PasswordHash: f.hashes[id]}, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserPasswordHash(_ context.Context, id uuid.UUID) (string, error) {
	return f.hashes[id], nil
}

func (f *fakeUserStore) UpdateUserProfile(_ context.Context, id uuid.UUID, firstName, lastName string) (*types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.FirstName = firstName
	u.LastName = lastName
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) UpdateUserAvatar(_ context.Context, id uuid.UUID, avatarURL string) (*types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.AvatarURL = avatarURL
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) UpdateUserPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.hashes[id] = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateUserRole(_ context.Context, id uuid.UUID, role types.Role) (*types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	delete(f.hashes, id)
	return true, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, search string, page, limit int) ([]types.User, int, error) {
	var all []types.User
	for _, u := range f.users {
		if search == "" || strings.Contains(strings.ToLower(u.Email), strings.ToLower(search)) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeUserStore) CountUsers(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeUserStore) CountAdmins(_ context.Context) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == types.RoleAdmin {
			n++
		}
	}
	return n, nil
}

type fakeResumeStore struct {
	resumes map[uuid.UUID]db.Resume
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{resumes: make(map[uuid.UUID]db.Resume)}
}

func (f *fakeResumeStore) CreateResume(_ context.Context, userID uuid.UUID, doc *types.ResumeDocument) (*db.Resume, error) {
	r := db.Resume{
		ID:        uuid.New(),
		UserID:    userID,
		Document:  *doc.Clone(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	id := r.ID
	r.Document.ID = &id
	f.resumes[r.ID] = r
	return &r, nil
}

func (f *fakeResumeStore) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeResumeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	var out []db.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeResumeStore) UpdateResume(_ context.Context, userID, id uuid.UUID, doc *types.ResumeDocument) (*db.Resume, error) {
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	r.Document = *doc.Clone()
	docID := id
	r.Document.ID = &docID
	r.UpdatedAt = time.Now()
	f.resumes[id] = r
	return &r, nil
}

func (f *fakeResumeStore) DeleteResume(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(f.resumes, id)
	return true, nil
}

func (f *fakeResumeStore) CountResumes(_ context.Context) (int, error) {
	return len(f.resumes), nil
}

func (f *fakeResumeStore) TemplateUsage(_ context.Context) (map[types.TemplateType]int, error) {
	usage := make(map[types.TemplateType]int)
	for _, r := range f.resumes {
		tt := r.Document.TemplateType
		if tt == "" {
			tt = types.Template0
		}
		usage[tt]++
	}
	return usage, nil
}

type fakeBlogStore struct {
	blogs   map[uuid.UUID]db.BlogWithAuthor
	authors map[uuid.UUID]types.BlogAuthor
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{
		blogs:   make(map[uuid.UUID]db.BlogWithAuthor),
		authors: make(map[uuid.UUID]types.BlogAuthor),
	}
}

func (f *fakeBlogStore) CreateBlog(_ context.Context, authorID uuid.UUID, req *types.CreateBlogRequest) (*db.BlogWithAuthor, error) {
	for _, b := range f.blogs {
		if b.Slug == req.Slug {
			return nil, db.ErrDuplicate
		}
	}
	b := db.BlogWithAuthor{
		Blog: types.Blog{
			ID:        uuid.New(),
			Title:     req.Title,
			Content:   req.Content,
			Excerpt:   req.Excerpt,
			Thumbnail: req.Thumbnail,
			Slug:      req.Slug,
			Published: req.Published,
			AuthorID:  authorID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Author: f.authors[authorID],
	}
	f.blogs[b.ID] = b
	return &b, nil
}

func (f *fakeBlogStore) GetBlogByID(_ context.Context, id uuid.UUID) (*db.BlogWithAuthor, error) {
	if b, ok := f.blogs[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBlogStore) GetPublishedBlogBySlug(_ context.Context, slug string) (*db.BlogWithAuthor, error) {
	for _, b := range f.blogs {
		if b.Slug == slug && b.Published {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogStore) ListBlogs(_ context.Context, publishedOnly bool, search string, page, limit int) ([]db.BlogWithAuthor, int, error) {
	var all []db.BlogWithAuthor
	for _, b := range f.blogs {
		if publishedOnly && !b.Published {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(search)) {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeBlogStore) UpdateBlog(_ context.Context, id uuid.UUID, req *types.UpdateBlogRequest) (*db.BlogWithAuthor, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, nil
	}
	if req.Slug != nil {
		for otherID, other := range f.blogs {
			if otherID != id && other.Slug == *req.Slug {
				return nil, db.ErrDuplicate
			}
		}
		b.Slug = *req.Slug
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Excerpt != nil {
		b.Excerpt = *req.Excerpt
	}
	if req.Thumbnail != nil {
		b.Thumbnail = *req.Thumbnail
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	b.UpdatedAt = time.Now()
	f.blogs[id] = b
	return &b, nil
}

func (f *fakeBlogStore) DeleteBlog(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.blogs[id]; !ok {
		return false, nil
	}
	delete(f.blogs, id)
	return true, nil
}

func (f *fakeBlogStore) CountBlogs(_ context.Context) (int, error) {
	return len(f.blogs), nil
}
