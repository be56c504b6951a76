package service

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/scraper"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// memPostRepo is an in-memory SmmPostRepo; documents go through a bson round trip like a real store
type memPostRepo struct {
	mu         sync.Mutex
	order      []primitive.ObjectID
	docs       map[primitive.ObjectID]*mongo.SmmPostModel
	appendErr  error
	createErr  map[string]error
	appendCall int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{
		docs:      make(map[primitive.ObjectID]*mongo.SmmPostModel),
		createErr: make(map[string]error),
	}
}

func clonePost(p *mongo.SmmPostModel) *mongo.SmmPostModel {
	raw, err := bson.Marshal(p)
	if err != nil {
		panic(err)
	}
	var out mongo.SmmPostModel
	if err = bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (r *memPostRepo) Create(_ context.Context, post *mongo.SmmPostModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createErr[post.Link]; err != nil {
		return err
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.MetricsHistory == nil {
		post.MetricsHistory = []mongo.MetricsSnapshot{}
	}
	r.docs[post.ID] = clonePost(post)
	r.order = append(r.order, post.ID)
	return nil
}

func (r *memPostRepo) FindByLink(_ context.Context, link string) (*mongo.SmmPostModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if p := r.docs[id]; p.Link == link {
			return clonePost(p), nil
		}
	}
	return nil, mongoDB.ErrNoDocuments
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongo.SmmPostModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	return clonePost(p), nil
}

func (r *memPostRepo) List(_ context.Context, _ mongo.PostFilter, _, _ int64) ([]*mongo.SmmPostModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*mongo.SmmPostModel, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, clonePost(r.docs[id]))
	}
	return list, int64(len(list)), nil
}

func (r *memPostRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*mongo.SmmPostModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	raw, _ := bson.Marshal(p)
	var doc bson.M
	_ = bson.Unmarshal(raw, &doc)
	for k, v := range fields {
		doc[k] = v
	}
	doc["updated_at"] = time.Now()
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out mongo.SmmPostModel
	if err = bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	r.docs[id] = &out
	return clonePost(&out), nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return mongoDB.ErrNoDocuments
	}
	delete(r.docs, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memPostRepo) AppendSnapshot(_ context.Context, id primitive.ObjectID, snap mongo.MetricsSnapshot, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendCall++
	if r.appendErr != nil {
		return r.appendErr
	}
	p, ok := r.docs[id]
	if !ok {
		return mongoDB.ErrNoDocuments
	}
	p.MetricsHistory = append(p.MetricsHistory, snap)
	if limit > 0 && len(p.MetricsHistory) > limit {
		p.MetricsHistory = p.MetricsHistory[len(p.MetricsHistory)-limit:]
	}
	return nil
}

func (r *memPostRepo) GetHistory(_ context.Context, id primitive.ObjectID) ([]mongo.MetricsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	return clonePost(p).MetricsHistory, nil
}

func (r *memPostRepo) all() []*mongo.SmmPostModel {
	list, _, _ := r.List(context.Background(), mongo.PostFilter{}, 0, 0)
	return list
}

// MockScraper is a mock of scraper.Client
type MockScraper struct {
	mock.Mock
}

func (m *MockScraper) FetchRecentLinks(ctx context.Context, username string, n int) ([]string, error) {
	args := m.Called(ctx, username, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockScraper) FetchPostDetail(ctx context.Context, link string, topComments int) (*scraper.PostDetail, error) {
	args := m.Called(ctx, link, topComments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scraper.PostDetail), args.Error(1)
}

// MockAccountRepo is a mock of mongo.SocialAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *mongo.SocialAccountModel) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*mongo.SocialAccountModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.SocialAccountModel), args.Error(1)
}

func (m *MockAccountRepo) GetByName(ctx context.Context, name string) (*mongo.SocialAccountModel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.SocialAccountModel), args.Error(1)
}

func (m *MockAccountRepo) ListAll(ctx context.Context) ([]*mongo.SocialAccountModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mongo.SocialAccountModel), args.Error(1)
}

func (m *MockAccountRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.SocialAccountModel, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.SocialAccountModel), args.Error(1)
}

// MockSysBox is a mock of SysBoxService
type MockSysBox struct {
	mock.Mock
}

func newMockSysBox() *MockSysBox {
	m := new(MockSysBox)
	m.On("NotifyNewPost", mock.Anything, mock.Anything).Return().Maybe()
	m.On("NotifyMetricsChanged", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.On("NotifyPostUpdated", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.On("NotifyPostDeleted", mock.Anything, mock.Anything).Return().Maybe()
	return m
}

func (m *MockSysBox) NotifyNewPost(ctx context.Context, post *mongo.SmmPostModel) {
	m.Called(ctx, post)
}

func (m *MockSysBox) NotifyMetricsChanged(ctx context.Context, before, after *mongo.SmmPostModel) {
	m.Called(ctx, before, after)
}

func (m *MockSysBox) NotifyPostUpdated(ctx context.Context, post *mongo.SmmPostModel, fields []string) {
	m.Called(ctx, post, fields)
}

func (m *MockSysBox) NotifyPostDeleted(ctx context.Context, post *mongo.SmmPostModel) {
	m.Called(ctx, post)
}

func (m *MockSysBox) GetNotificationList(ctx context.Context, query *dto.SysBoxQueryDTO) ([]*dto.SysBoxDTO, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*dto.SysBoxDTO), args.Error(1)
}

func (m *MockSysBox) GetUnreadCount(ctx context.Context) (*dto.SysBoxUnreadDTO, error) {
	args := m.Called(ctx)
	return args.Get(0).(*dto.SysBoxUnreadDTO), args.Error(1)
}

func (m *MockSysBox) MarkRead(ctx context.Context, msgID string) error {
	return m.Called(ctx, msgID).Error(0)
}

func (m *MockSysBox) MarkAllRead(ctx context.Context) (*dto.MarkAllReadDTO, error) {
	args := m.Called(ctx)
	return args.Get(0).(*dto.MarkAllReadDTO), args.Error(1)
}

var errStoreDown = errors.New("store unavailable")
