package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	StatsKey          = "verification:stats"
	LatestRequestPref = "verification:latest:%d"
)

const (
	UserTTL   = 5 * time.Minute
	StatsTTL  = 1 * time.Minute
	LatestTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func LatestRequestKey(userID uint) string {
	return fmt.Sprintf(LatestRequestPref, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateLatestRequest(ctx context.Context, userID uint) {
	Invalidate(ctx, LatestRequestKey(userID))
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}
