package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/hashtag-app/backend/internal/models"
)

// postParts splits a resolver source into the underlying post and, when
// present, its engagement annotation. Lists that skip annotation (search
// results) resolve the engagement fields to null.
func postParts(source interface{}) (*models.Post, *models.PostView) {
	switch src := source.(type) {
	case models.PostView:
		view := src
		return &view.Post, &view
	case *models.PostView:
		return &src.Post, src
	case models.Post:
		post := src
		return &post, nil
	case *models.Post:
		return src, nil
	}
	return nil, nil
}

func postField(resolve func(post *models.Post) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		post, _ := postParts(p.Source)
		if post == nil {
			return nil, nil
		}
		return resolve(post)
	}
}

func viewField(resolve func(view *models.PostView) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		_, view := postParts(p.Source)
		if view == nil {
			return nil, nil
		}
		return resolve(view)
	}
}

func (r *Resolver) buildTypes() (userType, postType, notificationType, postPageType *graphql.Object) {
	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"firstName":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":      &graphql.Field{Type: graphql.String},
			"userName":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"profilePicUrl": &graphql.Field{Type: graphql.String},
			"coverPicUrl":   &graphql.Field{Type: graphql.String},
			"bio":           &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.DateTime},
		},
	})

	// follower/following reference the user type itself
	userType.AddFieldConfig("follower", &graphql.Field{
		Type: graphql.NewList(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := p.Source.(models.User)
			if !ok {
				if ptr, ok := p.Source.(*models.User); ok {
					user = *ptr
				} else {
					return nil, nil
				}
			}
			return r.Users.GetFollowers(p.Context, user.ID)
		},
	})
	userType.AddFieldConfig("following", &graphql.Field{
		Type: graphql.NewList(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := p.Source.(models.User)
			if !ok {
				if ptr, ok := p.Source.(*models.User); ok {
					user = *ptr
				} else {
					return nil, nil
				}
			}
			return r.Users.GetFollowing(p.Context, user.ID)
		},
	})

	// Engagement fields resolve through explicit functions because the
	// annotated view embeds the post and the default resolver does not
	// reach promoted fields.
	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.ID, nil }),
			},
			"content": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.Content, nil }),
			},
			"imageUrl": &graphql.Field{
				Type:    graphql.String,
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.ImageURL, nil }),
			},
			"authorId": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.AuthorID, nil }),
			},
			"parentId": &graphql.Field{
				Type: graphql.String,
				Resolve: postField(func(post *models.Post) (interface{}, error) {
					if post.ParentID == nil {
						return nil, nil
					}
					return *post.ParentID, nil
				}),
			},
			"isLiked": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: viewField(func(view *models.PostView) (interface{}, error) {
					if view.IsLiked == nil {
						return nil, nil
					}
					return *view.IsLiked, nil
				}),
			},
			"isBookmarked": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: viewField(func(view *models.PostView) (interface{}, error) {
					if view.IsBookmarked == nil {
						return nil, nil
					}
					return *view.IsBookmarked, nil
				}),
			},
			"likeCount": &graphql.Field{
				Type:    graphql.Int,
				Resolve: viewField(func(view *models.PostView) (interface{}, error) { return view.LikeCount, nil }),
			},
			"bookmarkCount": &graphql.Field{
				Type:    graphql.Int,
				Resolve: viewField(func(view *models.PostView) (interface{}, error) { return view.BookmarkCount, nil }),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.CreatedAt, nil }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: postField(func(post *models.Post) (interface{}, error) { return post.UpdatedAt, nil }),
			},
		},
	})

	postType.AddFieldConfig("author", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post, _ := postParts(p.Source)
			if post == nil {
				return nil, nil
			}
			return r.Users.GetUserByID(p.Context, post.AuthorID)
		},
	})
	postType.AddFieldConfig("replies", &graphql.Field{
		Type: graphql.NewList(postType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post, _ := postParts(p.Source)
			if post == nil {
				return nil, nil
			}
			return r.Posts.GetReplies(p.Context, post.ID, viewerID(p))
		},
	})

	senderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NotificationSender",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"firstName":     &graphql.Field{Type: graphql.String},
			"lastName":      &graphql.Field{Type: graphql.String},
			"userName":      &graphql.Field{Type: graphql.String},
			"profilePicUrl": &graphql.Field{Type: graphql.String},
		},
	})

	notificationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Notification",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"type":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"senderId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"receiverId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"postId":     &graphql.Field{Type: graphql.String},
			"commentId":  &graphql.Field{Type: graphql.String},
			"timestamp":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"sender":     &graphql.Field{Type: senderType},
		},
	})

	postPageType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PostPage",
		Fields: graphql.Fields{
			"posts": &graphql.Field{Type: graphql.NewList(postType)},
			"nextId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*models.PostPage)
					if !ok || page.NextID == nil {
						return nil, nil
					}
					return *page.NextID, nil
				},
			},
		},
	})

	return userType, postType, notificationType, postPageType
}

var createPostInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreatePostInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createReplyInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateReplyInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"parentId": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"firstName":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"lastName":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"userName":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"profilePicUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var updateUserProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateUserProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"firstName":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"userName":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"profilePicUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"coverPicUrl":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"bio":           &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
