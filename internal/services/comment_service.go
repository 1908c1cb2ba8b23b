package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentReply is a reply with its author profile populated.
type CommentReply struct {
	models.Comment
	Author models.UserCompact `json:"authorProfile"`
}

// CommentThread is a top-level comment with its direct replies attached.
// Deeper nesting is stored but flattened out of this read path.
type CommentThread struct {
	models.Comment
	Author  models.UserCompact `json:"authorProfile"`
	Replies []CommentReply     `json:"replies"`
}

// CommentService creates, lists and cascade-deletes comments against any
// registered commentable target.
type CommentService struct {
	comments      repositories.CommentRepository
	registry      *repositories.ContentRegistry
	users         repositories.UserRepository
	notifications *NotificationService
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, registry *repositories.ContentRegistry, users repositories.UserRepository, notifications *NotificationService) *CommentService {
	return &CommentService{comments: comments, registry: registry, users: users, notifications: notifications}
}

// AddComment creates a top-level comment on the target and returns it, with
// the actor's profile attached, alongside the target's updated total comment
// count. The target's owner is notified unless they are the actor.
func (s *CommentService) AddComment(ctx context.Context, actorID uint, targetID string, targetType models.TargetType, content string) (*CommentReply, int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, 0, ErrEmptyContent
	}

	store, err := s.registry.Resolve(targetType)
	if err != nil {
		return nil, 0, err
	}
	ownerID, err := store.GetOwner(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	comment := &models.Comment{
		AuthorID:        actorID,
		CommentableID:   targetID,
		CommentableType: targetType,
		Content:         content,
	}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, 0, err
	}
	if err := store.IncrementComments(ctx, targetID, 1); err != nil {
		log.Printf("comment %d: counter update failed: %v", comment.ID, err)
	}

	count, err := s.comments.CountByTarget(targetID, targetType)
	if err != nil {
		return nil, 0, err
	}

	if ownerID != actorID {
		if err := s.notifications.Notify(ownerID, actorID, models.NotificationComment, targetID); err != nil {
			log.Printf("comment %d: notification failed: %v", comment.ID, err)
		}
	}
	return s.withAuthor(comment), count, nil
}

// withAuthor attaches the author's compact profile; a lookup failure leaves
// the profile zero-valued rather than failing the write that already landed.
func (s *CommentService) withAuthor(comment *models.Comment) *CommentReply {
	view := &CommentReply{Comment: *comment}
	if author, err := s.users.GetUserByID(comment.AuthorID); err == nil {
		view.Author = author.ToCompact()
	}
	return view
}

// AddReply creates a reply under an existing comment. The reply inherits the
// parent's commentable target. Replies never notify.
func (s *CommentService) AddReply(ctx context.Context, actorID uint, parentID uint, content string) (*CommentReply, int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, 0, ErrEmptyContent
	}

	parent, err := s.comments.GetCommentByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	reply := &models.Comment{
		AuthorID:        actorID,
		CommentableID:   parent.CommentableID,
		CommentableType: parent.CommentableType,
		Content:         content,
		ParentCommentID: &parent.ID,
	}
	if err := s.comments.CreateComment(reply); err != nil {
		return nil, 0, err
	}
	if store, err := s.registry.Resolve(parent.CommentableType); err == nil {
		if err := store.IncrementComments(ctx, parent.CommentableID, 1); err != nil {
			log.Printf("reply %d: counter update failed: %v", reply.ID, err)
		}
	}

	count, err := s.comments.CountByTarget(parent.CommentableID, parent.CommentableType)
	if err != nil {
		return nil, 0, err
	}
	return s.withAuthor(reply), count, nil
}

// DeleteComment removes a comment and its full reply subtree, depth-first.
// Permitted for the comment's author and for the owner of the target content.
// Returns the target's remaining total comment count.
func (s *CommentService) DeleteComment(ctx context.Context, actorID uint, commentID uint) (int64, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	store, err := s.registry.Resolve(comment.CommentableType)
	if err != nil {
		return 0, err
	}
	ownerID, err := store.GetOwner(ctx, comment.CommentableID)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if actorID != comment.AuthorID && actorID != ownerID {
		return 0, ErrForbidden
	}

	// One query materializes the parent→children index; the walk then costs
	// no further round-trips regardless of fanout.
	all, err := s.comments.GetCommentsByTarget(comment.CommentableID, comment.CommentableType)
	if err != nil {
		return 0, err
	}
	children := make(map[uint][]uint, len(all))
	for _, c := range all {
		if c.ParentCommentID != nil {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c.ID)
		}
	}
	doomed := collectSubtree(children, commentID)

	if err := s.comments.DeleteByIDs(doomed); err != nil {
		return 0, err
	}
	if err := store.IncrementComments(ctx, comment.CommentableID, -len(doomed)); err != nil {
		log.Printf("comment %d: counter update failed: %v", commentID, err)
	}

	return s.comments.CountByTarget(comment.CommentableID, comment.CommentableType)
}

// collectSubtree returns the root and every transitive descendant, depth-first.
// parentComment references are acyclic by construction, so no cycle check.
func collectSubtree(children map[uint][]uint, root uint) []uint {
	ids := []uint{root}
	for _, child := range children[root] {
		ids = append(ids, collectSubtree(children, child)...)
	}
	return ids
}

// ListComments returns the target's top-level comments newest-first, each
// with its direct replies oldest-first, plus the total count across all
// nesting levels.
func (s *CommentService) ListComments(ctx context.Context, targetID string, targetType models.TargetType) ([]CommentThread, int64, error) {
	store, err := s.registry.Resolve(targetType)
	if err != nil {
		return nil, 0, err
	}
	if _, err := store.GetOwner(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	topLevel, err := s.comments.GetTopLevelByTarget(targetID, targetType)
	if err != nil {
		return nil, 0, err
	}
	parentIDs := make([]uint, len(topLevel))
	for i, c := range topLevel {
		parentIDs[i] = c.ID
	}
	replies, err := s.comments.GetRepliesByParentIDs(parentIDs)
	if err != nil {
		return nil, 0, err
	}

	authorIDs := make([]uint, 0, len(topLevel)+len(replies))
	seen := make(map[uint]bool)
	collect := func(id uint) {
		if !seen[id] {
			seen[id] = true
			authorIDs = append(authorIDs, id)
		}
	}
	for _, c := range topLevel {
		collect(c.AuthorID)
	}
	for _, r := range replies {
		collect(r.AuthorID)
	}
	users, err := s.users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		byID[u.ID] = u.ToCompact()
	}

	repliesByParent := make(map[uint][]CommentReply)
	for _, r := range replies {
		repliesByParent[*r.ParentCommentID] = append(repliesByParent[*r.ParentCommentID], CommentReply{
			Comment: r,
			Author:  byID[r.AuthorID],
		})
	}

	threads := make([]CommentThread, len(topLevel))
	for i, c := range topLevel {
		threads[i] = CommentThread{
			Comment: c,
			Author:  byID[c.AuthorID],
			Replies: repliesByParent[c.ID],
		}
	}

	count, err := s.comments.CountByTarget(targetID, targetType)
	if err != nil {
		return nil, 0, err
	}
	return threads, count, nil
}
