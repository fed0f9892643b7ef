package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a fresh pool connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Follow{}))
	return db
}

type testEnv struct {
	db    *gorm.DB
	auth  AuthService
	rels  RelationshipService
	feeds FeedService
	posts PostService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupDB(t)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	feeds := NewFeedService(postRepo, followRepo, nil)
	return &testEnv{
		db:    db,
		auth:  NewAuthService(userRepo, "test-secret", time.Hour),
		rels:  NewRelationshipService(userRepo, followRepo, nil),
		feeds: feeds,
		posts: NewPostService(postRepo, commentRepo, feeds),
	}
}

func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) post(t *testing.T, author *model.User, title string, public bool, tags string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{Title: title, Content: "body of " + title, Public: public, Tags: tags, UserID: author.ID, CreatedAt: at}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func ctxb() context.Context { return context.Background() }

func postIDs(ps []*model.Post) []int64 {
	ids := make([]int64, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
