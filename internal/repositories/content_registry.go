package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/soykat/vibely/backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrContentNotFound is returned when a target id resolves to no record.
	ErrContentNotFound = errors.New("content not found")
	// ErrUnregisteredType is returned when a type tag has no content store.
	ErrUnregisteredType = errors.New("unregistered content type")
)

// ContentStore is the accessor a content kind exposes so likes and comments
// can attach to it without one code path per kind. GetOwner doubles as the
// existence check. Comment membership is looked up by query, so
// IncrementComments only maintains a denormalized counter where one exists.
type ContentStore interface {
	GetOwner(ctx context.Context, id string) (uint, error)
	IncrementLikes(ctx context.Context, id string, delta int) error
	IncrementComments(ctx context.Context, id string, delta int) error
}

// ContentRegistry maps a content-type tag to its store. Tags outside the
// closed enumeration, and reserved tags with no store yet (Reel), resolve to
// ErrUnregisteredType.
type ContentRegistry struct {
	stores map[models.TargetType]ContentStore
}

// NewContentRegistry creates an empty registry
func NewContentRegistry() *ContentRegistry {
	return &ContentRegistry{stores: make(map[models.TargetType]ContentStore)}
}

// Register binds a content store to a type tag
func (r *ContentRegistry) Register(t models.TargetType, store ContentStore) {
	r.stores[t] = store
}

// Resolve returns the store registered for the tag
func (r *ContentRegistry) Resolve(t models.TargetType) (ContentStore, error) {
	store, ok := r.stores[t]
	if !ok {
		return nil, ErrUnregisteredType
	}
	return store, nil
}

// postContentStore adapts MongoPostRepository to the ContentStore contract.
type postContentStore struct {
	posts PostRepository
}

func NewPostContentStore(posts PostRepository) ContentStore {
	return &postContentStore{posts: posts}
}

func (s *postContentStore) GetOwner(ctx context.Context, id string) (uint, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return 0, ErrContentNotFound
	}
	return post.UserID, nil
}

func (s *postContentStore) IncrementLikes(ctx context.Context, id string, delta int) error {
	return s.posts.IncrementLikesCount(ctx, id, delta)
}

func (s *postContentStore) IncrementComments(ctx context.Context, id string, delta int) error {
	return s.posts.IncrementCommentsCount(ctx, id, delta)
}

// storyContentStore adapts the story repository to the ContentStore contract.
type storyContentStore struct {
	stories StoryRepository
}

func NewStoryContentStore(stories StoryRepository) ContentStore {
	return &storyContentStore{stories: stories}
}

func (s *storyContentStore) GetOwner(ctx context.Context, id string) (uint, error) {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return 0, ErrContentNotFound
	}
	return story.UserID, nil
}

func (s *storyContentStore) IncrementLikes(ctx context.Context, id string, delta int) error {
	return s.stories.IncrementLikesCount(ctx, id, delta)
}

func (s *storyContentStore) IncrementComments(ctx context.Context, id string, delta int) error {
	return s.stories.IncrementCommentsCount(ctx, id, delta)
}

// commentContentStore makes comments themselves likeable and commentable.
type commentContentStore struct {
	comments CommentRepository
}

func NewCommentContentStore(comments CommentRepository) ContentStore {
	return &commentContentStore{comments: comments}
}

func (s *commentContentStore) GetOwner(ctx context.Context, id string) (uint, error) {
	commentID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, ErrContentNotFound
	}
	comment, err := s.comments.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}
	return comment.AuthorID, nil
}

func (s *commentContentStore) IncrementLikes(ctx context.Context, id string, delta int) error {
	return s.comments.IncrementLikesCount(id, delta)
}

// IncrementComments is a no-op for comments: reply counts are derived by
// query, there is no embedded counter to maintain.
func (s *commentContentStore) IncrementComments(ctx context.Context, id string, delta int) error {
	return nil
}
