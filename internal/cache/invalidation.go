package cache

import (
	"context"
	"fmt"
)

const (
	PostKeyPrefix   = "post:%d"
	PostSlugPrefix  = "post:slug:%s"
	PostListPattern = "posts:list:*"
	TagListKey      = "tags:list"
	scanBatchSize   = 100
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostSlugKey(slug string) string {
	return fmt.Sprintf(PostSlugPrefix, slug)
}

// InvalidatePostLists removes every cached post listing page and the tag list.
// It returns the number of keys deleted.
func InvalidatePostLists(ctx context.Context) (int64, error) {
	if client == nil {
		return 0, nil
	}

	var deleted int64
	iter := client.Scan(ctx, 0, PostListPattern, scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			n, err := client.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete post list keys: %w", err)
			}
			deleted += n
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan post list keys: %w", err)
	}

	batch = append(batch, TagListKey)
	n, err := client.Del(ctx, batch...).Result()
	if err != nil {
		return deleted, fmt.Errorf("delete post list keys: %w", err)
	}
	return deleted + n, nil
}

// InvalidatePosts removes the cached detail entries of the given posts.
func InvalidatePosts(ctx context.Context, ids []uint, slugs []string) error {
	if client == nil || len(ids)+len(slugs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids)+len(slugs))
	for _, id := range ids {
		keys = append(keys, PostKey(id))
	}
	for _, slug := range slugs {
		keys = append(keys, PostSlugKey(slug))
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete post keys: %w", err)
	}
	return nil
}
