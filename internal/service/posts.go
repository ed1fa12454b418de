// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// PostSource is the closed set of feeds a post can belong to.
type PostSource string

const (
	PostSourceUser  PostSource = "user"
	PostSourceGroup PostSource = "group"
	PostSourcePage  PostSource = "page"
)

// Like toggle outcomes.
const (
	LikeStatusLiked   = "liked"
	LikeStatusUnliked = "unliked"
)

// PostService handles posts, comments, likes, and shares. Posts always
// live in the creator's feed index; group and page posts are
// additionally referenced from the group or page document.
type PostService struct {
	posts  PostStore
	users  UserStore
	groups GroupStore
	pages  PageStore
	notify *notifier
}

// GetAll lists the posts of one source: a user's own posts, or the
// posts referenced by a group or page.
func (s *PostService) GetAll(ctx context.Context, source PostSource, sourceID primitive.ObjectID, limit, skip int64) ([]models.Post, error) {
	switch source {
	case PostSourceUser:
		return s.posts.FindByCreator(ctx, sourceID, limit, skip)
	case PostSourceGroup:
		group, err := findGroup(ctx, s.groups, sourceID, "Invalid group id")
		if err != nil {
			return nil, err
		}
		return s.posts.FindByIDs(ctx, group.Posts, limit, skip)
	case PostSourcePage:
		page, err := findPage(ctx, s.pages, sourceID, "Invalid page id")
		if err != nil {
			return nil, err
		}
		return s.posts.FindByIDs(ctx, page.Posts, limit, skip)
	}
	return nil, apperr.BadRequest("Invalid post source type")
}

// GetByID fetches one post.
func (s *PostService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return findPost(ctx, s.posts, id, "Invalid post id")
}

// CreatePostInput carries the validated creation payload. GroupID or
// PageID must be set when Source says so.
type CreatePostInput struct {
	Source      PostSource
	PostTitle   string
	PostContent string
	Images      []string
	CreatedBy   primitive.ObjectID
	GroupID     primitive.ObjectID
	PageID      primitive.ObjectID
}

// Create stores a new post and indexes it in the creator's feed. Group
// and page posts are also appended to the target's post list.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	user, err := findUser(ctx, s.users, in.CreatedBy, "Invalid user id")
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		PostTitle:   in.PostTitle,
		PostContent: in.PostContent,
		Images:      in.Images,
		CreatedBy:   in.CreatedBy,
	}
	if post.Images == nil {
		post.Images = []string{}
	}

	switch in.Source {
	case PostSourceUser:
		if err := s.posts.Save(ctx, post); err != nil {
			return nil, err
		}
	case PostSourceGroup:
		group, err := findGroup(ctx, s.groups, in.GroupID, "Invalid group id")
		if err != nil {
			return nil, err
		}
		if err := s.posts.Save(ctx, post); err != nil {
			return nil, err
		}
		group.Posts = append(group.Posts, post.ID)
		if err := s.groups.Save(ctx, group); err != nil {
			return nil, err
		}
	case PostSourcePage:
		page, err := findPage(ctx, s.pages, in.PageID, "Invalid page id")
		if err != nil {
			return nil, err
		}
		if err := s.posts.Save(ctx, post); err != nil {
			return nil, err
		}
		page.Posts = append(page.Posts, post.ID)
		if err := s.pages.Save(ctx, page); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.BadRequest("Invalid post source type")
	}

	user.Posts = append(user.Posts, models.PostRef{PostID: post.ID, IsShared: false})
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePostInput carries the optional fields an update may set.
type UpdatePostInput struct {
	PostTitle   string
	PostContent string
	Images      []string
}

// Update applies the provided fields. Creator only.
func (s *PostService) Update(ctx context.Context, userID, postID primitive.ObjectID, in UpdatePostInput) (*models.Post, error) {
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return nil, err
	}
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return nil, err
	}

	if post.CreatedBy != userID {
		return nil, apperr.BadRequest("You can't update this post, only the creator can edit this post")
	}

	if in.PostTitle != "" {
		post.PostTitle = in.PostTitle
	}
	if in.PostContent != "" {
		post.PostContent = in.PostContent
	}
	if in.Images != nil {
		post.Images = in.Images
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes the post. Creator only; deleting twice fails.
func (s *PostService) Delete(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return err
	}
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return err
	}

	if post.CreatedBy != userID {
		return apperr.BadRequest("Only post creator can delete this post")
	}
	if post.IsDeleted {
		return apperr.BadRequest("This post is already deleted")
	}

	post.IsDeleted = true
	return s.posts.Save(ctx, post)
}

// ToggleLike likes the post, or removes an existing like. Liking
// notifies the post owner; unliking does not retract the notification.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (string, error) {
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return "", err
	}
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return "", err
	}

	if post.LikedBy(userID) {
		post.Likes = models.RemoveID(post.Likes, userID)
		if err := s.posts.Save(ctx, post); err != nil {
			return "", err
		}
		return LikeStatusUnliked, nil
	}

	post.Likes = append(post.Likes, userID)
	if err := s.posts.Save(ctx, post); err != nil {
		return "", err
	}
	if err := s.notify.notify(ctx, post.CreatedBy, userID, NotifyLikePost, user.Username, ""); err != nil {
		return "", err
	}
	return LikeStatusLiked, nil
}

// AddComment appends a comment and notifies the post owner with the
// comment text.
func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, content string) (*models.Comment, error) {
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return nil, err
	}
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}
	post.Comments = append(post.Comments, comment)

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	if err := s.notify.notify(ctx, post.CreatedBy, userID, NotifyCommentPost, user.Username, content); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment from the post. The authorization
// check matches the caller against the author of any comment on the
// post, not the targeted one; a known quirk kept for compatibility.
func (s *PostService) DeleteComment(ctx context.Context, postID, userID, commentID primitive.ObjectID) error {
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return err
	}
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return err
	}

	if _, ok := post.CommentByID(commentID); !ok {
		return apperr.BadRequest("Comment does not exist")
	}

	callerHasComment := false
	for _, c := range post.Comments {
		if c.CreatedBy == userID {
			callerHasComment = true
			break
		}
	}
	if !callerHasComment {
		return apperr.BadRequest("Only the comment creator can delete this comment")
	}

	kept := post.Comments[:0:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	post.Comments = kept
	return s.posts.Save(ctx, post)
}

// Share indexes the post in the sharer's feed as a shared entry,
// records the sharer on the post, and notifies the owner.
func (s *PostService) Share(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := findPost(ctx, s.posts, postID, "Invalid post id")
	if err != nil {
		return err
	}
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}

	user.Posts = append(user.Posts, models.PostRef{PostID: postID, IsShared: true})
	post.Shares = append(post.Shares, userID)

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return err
	}
	return s.notify.notify(ctx, post.CreatedBy, userID, NotifySharePost, user.Username, "")
}
