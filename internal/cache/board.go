package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikajr10/project-management/internal/model"
)

const boardTTL = 5 * time.Minute

// BoardCache is a read-through cache of assembled project views. Every task
// mutation invalidates the owning project's entry, so a hit is never staler
// than the last committed write. A nil cache is a valid no-op cache.
type BoardCache struct {
	rdb *redis.Client
}

func NewBoardCache(rdb *redis.Client) *BoardCache {
	return &BoardCache{rdb: rdb}
}

func projectKey(id uint) string {
	return fmt.Sprintf("board:project:%d", id)
}

func (c *BoardCache) GetProject(ctx context.Context, id uint) (*model.Project, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, projectKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var project model.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, false
	}
	return &project, true
}

func (c *BoardCache) SetProject(ctx context.Context, project *model.Project) {
	if c == nil || c.rdb == nil || project == nil {
		return
	}
	data, err := json.Marshal(project)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, projectKey(project.ID), data, boardTTL)
}

func (c *BoardCache) InvalidateProject(ctx context.Context, id uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, projectKey(id))
}
