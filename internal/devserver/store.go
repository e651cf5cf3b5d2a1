package devserver

import (
	"errors"
	"sort"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/signup/internal/log"
)

var errUsernameTaken = errors.New("username in use")

// userStore keeps registered users keyed by username. Entries never expire.
type userStore struct {
	cache *gocache.Cache
}

func newUserStore() *userStore {
	return &userStore{cache: gocache.New(gocache.NoExpiration, 0)}
}

// add inserts u unless its username is already present.
func (s *userStore) add(u User) error {
	if err := s.cache.Add(u.Username, u, gocache.NoExpiration); err != nil {
		return errUsernameTaken
	}
	return nil
}

func (s *userStore) has(username string) bool {
	_, found := s.cache.Get(username)
	return found
}

// list returns all users ordered by username.
func (s *userStore) list() []User {
	items := s.cache.Items()
	out := make([]User, 0, len(items))
	for key, item := range items {
		u, ok := item.Object.(User)
		if !ok {
			log.Error(log.CatServer, "wrong type in user store", "key", key)
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
