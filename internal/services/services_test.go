package services

import (
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/testutil"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := New(NewGormRepositories(db), Options{
		Tokens:       NewTokenManager("test-secret", time.Hour),
		FeedMaxLimit: 100,
	})
	return svc, db
}
