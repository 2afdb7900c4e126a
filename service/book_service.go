// file: service/book_service.go

package service

import (
	"context"
	"encoding/json"
	"livelib-api/cache"
	"livelib-api/logger"
	"livelib-api/model"
	"livelib-api/repository"
	"time"
)

const (
	bookListCacheKey = "books:all"
	bookListCacheTTL = 10 * time.Minute
)

// BookService wraps the book repository with a cache-aside listing path.
type BookService struct {
	repo  repository.IBookRepository
	cache cache.Provider
}

func NewBookService(repo repository.IBookRepository, cacheProvider cache.Provider) *BookService {
	return &BookService{
		repo:  repo,
		cache: cacheProvider,
	}
}

// ListBooks returns the catalog, reading through the cache. Cache faults
// fall back to the database; the listing must not depend on Redis being
// up.
func (s *BookService) ListBooks(ctx context.Context) ([]*model.Book, error) {
	cached, err := s.cache.GetBytes(ctx, bookListCacheKey)
	if err == nil && cached != nil {
		var books []*model.Book
		if err := json.Unmarshal(cached, &books); err == nil {
			return books, nil
		}
	}

	books, err := s.repo.GetAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(books); err == nil {
		if err := s.cache.SetBytes(ctx, bookListCacheKey, data, bookListCacheTTL); err != nil {
			logger.Log.WithError(err).Warn("Failed to cache book listing")
		}
	}
	return books, nil
}

// GetBook loads a single book by id.
func (s *BookService) GetBook(ctx context.Context, id int) (*model.Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

// CreateBook adds a book and invalidates the listing cache.
func (s *BookService) CreateBook(ctx context.Context, book *model.Book) error {
	if err := s.repo.CreateBook(ctx, book); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// UpdateBook overwrites a book and invalidates the listing cache.
func (s *BookService) UpdateBook(ctx context.Context, book *model.Book) error {
	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// DeleteBook removes a book and invalidates the listing cache.
func (s *BookService) DeleteBook(ctx context.Context, id int) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *BookService) invalidateListing(ctx context.Context) {
	if err := s.cache.Remove(ctx, bookListCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate book listing cache")
	}
}
