package repos

import (
	"context"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// Fetcher is the live source of repository listings.
type Fetcher interface {
	ListPublic(ctx context.Context, username string) ([]Repository, error)
}

// Listing is the response handed to the HTTP layer. Source is "live" when
// the fetch succeeded and "cache" when a stored snapshot was served instead.
type Listing struct {
	Username     string       `json:"username"`
	Source       string       `json:"source"`
	FetchedAt    time.Time    `json:"fetched_at"`
	Repositories []Repository `json:"repositories"`
}

type snapshot struct {
	repositories []Repository
	fetchedAt    time.Time
}

// Service implements the two-tier read policy: live fetch, else the cached
// snapshot for that username, else the fetch error. Snapshots are kept in an
// LRU cache, which is internally synchronized.
type Service struct {
	fetcher Fetcher
	cache   *lru.Cache[string, snapshot]
}

// NewService creates a Service keeping up to size snapshots.
func NewService(fetcher Fetcher, size int) (*Service, error) {
	cache, err := lru.New[string, snapshot](size)
	if err != nil {
		return nil, err
	}
	return &Service{fetcher: fetcher, cache: cache}, nil
}

// List returns the user's repositories ranked by stars, then recency, then
// name. limit <= 0 means no cap.
func (s *Service) List(ctx context.Context, username string, limit int) (*Listing, error) {
	repositories, err := s.fetcher.ListPublic(ctx, username)
	if err != nil {
		cached, ok := s.cache.Get(username)
		if !ok {
			return nil, err
		}
		log.Warn().Str("username", username).Err(err).Msg("live fetch failed, serving cached snapshot")
		return &Listing{
			Username:     username,
			Source:       "cache",
			FetchedAt:    cached.fetchedAt,
			Repositories: capList(cached.repositories, limit),
		}, nil
	}

	sortRepositories(repositories)
	s.cache.Add(username, snapshot{repositories: repositories, fetchedAt: time.Now().UTC()})

	return &Listing{
		Username:     username,
		Source:       "live",
		FetchedAt:    time.Now().UTC(),
		Repositories: capList(repositories, limit),
	}, nil
}

// sortRepositories ranks by stars desc, then last update desc, then name asc.
// This approximates "pinned" repositories without authenticated API access.
func sortRepositories(repositories []Repository) {
	sort.SliceStable(repositories, func(i, j int) bool {
		if repositories[i].Stars != repositories[j].Stars {
			return repositories[i].Stars > repositories[j].Stars
		}
		if !repositories[i].UpdatedAt.Equal(repositories[j].UpdatedAt) {
			return repositories[i].UpdatedAt.After(repositories[j].UpdatedAt)
		}
		return repositories[i].Name < repositories[j].Name
	})
}

func capList(repositories []Repository, limit int) []Repository {
	if repositories == nil {
		repositories = []Repository{}
	}
	if limit > 0 && len(repositories) > limit {
		return repositories[:limit]
	}
	return repositories
}
