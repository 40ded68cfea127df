package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"messenger/internal/domain"
	"messenger/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// sqlite serializes writers; one connection keeps concurrent tests honest.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Contact{},
		&domain.Chat{},
		&domain.ChatMember{},
		&domain.Message{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	st := store.New(db)
	return New(st), st
}

// tickingClock hands out strictly increasing timestamps one second apart so
// ordering assertions never depend on wall-clock resolution.
func tickingClock(start time.Time) func() time.Time {
	var n int64
	return func() time.Time {
		return start.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Second)
	}
}
