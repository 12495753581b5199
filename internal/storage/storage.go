// Package storage provides the in-memory article and story stores.
package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lifechronicles/chronicler/internal/models"
)

type ArticleStore struct {
	articles map[string]*models.Article
	mu       sync.RWMutex
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles: make(map[string]*models.Article),
	}
}

// Save assigns an ID and creation time and stores the article.
func (s *ArticleStore) Save(article models.Article) *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	article.ID = uuid.NewString()
	article.CreatedAt = time.Now().UTC()
	s.articles[article.ID] = &article
	return &article
}

func (s *ArticleStore) Get(id string) (*models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, exists := s.articles[id]
	return article, exists
}

// List returns all articles, newest first.
func (s *ArticleStore) List() []*models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *ArticleStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.articles, id)
}

type StoryStore struct {
	stories map[string]*models.Story
	byToken map[string]string
	mu      sync.RWMutex
}

func NewStoryStore() *StoryStore {
	return &StoryStore{
		stories: make(map[string]*models.Story),
		byToken: make(map[string]string),
	}
}

// Save assigns an ID and creation time and stores the story.
func (s *StoryStore) Save(story models.Story) *models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	story.ID = uuid.NewString()
	story.CreatedAt = time.Now().UTC()
	s.stories[story.ID] = &story
	return &story
}

func (s *StoryStore) Get(id string) (*models.Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, exists := s.stories[id]
	return story, exists
}

// GetByToken looks up a shared story by its share token.
func (s *StoryStore) GetByToken(token string) (*models.Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, false
	}
	story, exists := s.stories[id]
	return story, exists
}

// List returns all stories, newest first.
func (s *StoryStore) List() []*models.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Story, 0, len(s.stories))
	for _, st := range s.stories {
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// MarkShared mints a share token for the story and makes it public. The
// token is stable: marking an already-shared story returns the existing
// token. Sharing is the only mutation a stored story supports.
func (s *StoryStore) MarkShared(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, exists := s.stories[id]
	if !exists {
		return "", false
	}
	if story.ShareToken != "" {
		return story.ShareToken, true
	}

	token := uuid.NewString()
	story.ShareToken = token
	story.IsPublic = true
	s.byToken[token] = id
	return token, true
}

func (s *StoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if story, exists := s.stories[id]; exists && story.ShareToken != "" {
		delete(s.byToken, story.ShareToken)
	}
	delete(s.stories, id)
}
