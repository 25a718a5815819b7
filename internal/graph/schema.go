package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/services"
)

// NewSchema builds the complete GraphQL schema over the resolver's
// services. The operation surface mirrors the client contract: queries
// for feed/profile/search/auth reads, mutations for posting and toggles.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType, postType, notificationType, postPageType := r.buildTypes()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAllPosts": &graphql.Field{
				Type: postPageType,
				Args: graphql.FieldConfigArgument{
					"cursor": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// The global feed requires a signed-in viewer;
					// anonymous callers get an empty page.
					caller := identity(p)
					if caller == nil {
						return &models.PostPage{Posts: []models.PostView{}}, nil
					}
					cursor, _ := p.Args["cursor"].(string)
					return r.Posts.GetAllPosts(p.Context, caller.ID, cursor)
				},
			},
			"getUserPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"userName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userName, _ := p.Args["userName"].(string)
					if userName == "" {
						return nil, nil
					}
					return r.Posts.GetUserPosts(p.Context, userName, viewerID(p))
				},
			},
			"getPresignerURL": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"imageType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"imageName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					imageType, _ := p.Args["imageType"].(string)
					imageName, _ := p.Args["imageName"].(string)
					return r.Storage.PresignPostUpload(p.Context, caller.ID, imageType, imageName)
				},
			},
			"getPresignerURLForSignUp": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"imageType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"imageName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					if email == "" {
						return nil, services.ErrUnauthenticated
					}
					imageType, _ := p.Args["imageType"].(string)
					imageName, _ := p.Args["imageName"].(string)
					return r.Storage.PresignSignUpUpload(p.Context, email, imageType, imageName)
				},
			},
			"getRepliesToPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					postID, _ := p.Args["postId"].(string)
					return r.Posts.GetPostView(p.Context, postID, viewerID(p))
				},
			},
			"getPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					query, _ := p.Args["query"].(string)
					return r.Posts.SearchPosts(p.Context, query)
				},
			},
			"verifyGoogleToken": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, _ := p.Args["token"].(string)
					return r.Users.VerifyGoogleToken(p.Context, token)
				},
			},
			"getUserInfo": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, nil
					}
					return r.Users.GetUserByID(p.Context, caller.ID)
				},
			},
			"getUserByName": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userName, _ := p.Args["userName"].(string)
					return r.Users.GetUserByName(p.Context, userName)
				},
			},
			"getRecommendedUsers": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, nil
					}
					return r.Users.Recommend(p.Context, caller.ID)
				},
			},
			"checkUserName": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"userName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userName, _ := p.Args["userName"].(string)
					return r.Users.CheckUserName(p.Context, userName)
				},
			},
			"checkUserEmail": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					return r.Users.CheckUserEmail(p.Context, email)
				},
			},
			"signInUser": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					return r.Users.SignIn(p.Context, email, password)
				},
			},
			"verifyOTP": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"to":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"otp": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					to, _ := p.Args["to"].(string)
					otp, _ := p.Args["otp"].(int)
					return r.Users.VerifyOTP(p.Context, to, otp)
				},
			},
			"searchUsers": &graphql.Field{
				Type: graphql.NewList(userType),
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					query, _ := p.Args["query"].(string)
					return r.Users.SearchUsers(p.Context, query)
				},
			},
			"getNotifications": &graphql.Field{
				Type: graphql.NewList(notificationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, nil
					}
					return r.Users.GetNotifications(p.Context, caller.ID)
				},
			},
			"getUserLikedPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, _ := p.Args["userId"].(string)
					return r.Posts.GetLikedPosts(p.Context, userID, viewerID(p))
				},
			},
			"getUserBookmarkedPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, nil
					}
					return r.Posts.GetBookmarkedPosts(p.Context, caller.ID)
				},
			},
			"getUserPostsWithMedia": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, _ := p.Args["userId"].(string)
					return r.Posts.GetPostsWithMedia(p.Context, userID, viewerID(p))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"payload": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					var input models.CreatePostInput
					if err := decodeInput(p.Args["payload"], &input); err != nil {
						return nil, err
					}
					return r.Posts.CreatePost(p.Context, caller.ID, input)
				},
			},
			"likePost": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					postID, _ := p.Args["postId"].(string)
					return toggleResult("Liked", r.Posts.LikePost(p.Context, postID, caller.ID))
				},
			},
			"unlikePost": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					postID, _ := p.Args["postId"].(string)
					return toggleResult("Unliked", r.Posts.UnlikePost(p.Context, postID, caller.ID))
				},
			},
			"createReply": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"payload": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createReplyInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					var input models.CreateReplyInput
					if err := decodeInput(p.Args["payload"], &input); err != nil {
						return nil, err
					}
					if _, err := r.Posts.CreateReply(p.Context, caller.ID, input); err != nil {
						return nil, err
					}
					return "Reply created", nil
				},
			},
			"bookmarkPost": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					postID, _ := p.Args["postId"].(string)
					return toggleResult("Bookmarked", r.Posts.BookmarkPost(p.Context, postID, caller.ID))
				},
			},
			"unBookmarkPost": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					postID, _ := p.Args["postId"].(string)
					return toggleResult("UnBookmarked", r.Posts.UnbookmarkPost(p.Context, postID, caller.ID))
				},
			},
			"followUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"to": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					to, _ := p.Args["to"].(string)
					if err := r.Users.Follow(p.Context, caller.ID, to); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"unfollowUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"to": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					to, _ := p.Args["to"].(string)
					if err := r.Users.Unfollow(p.Context, caller.ID, to); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"updateUserProfile": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"payload": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller := identity(p)
					if caller == nil {
						return nil, services.ErrUnauthenticated
					}
					var input models.UpdateUserProfileInput
					if err := decodeInput(p.Args["payload"], &input); err != nil {
						return nil, err
					}
					if err := r.Users.UpdateProfile(p.Context, caller.ID, input); err != nil {
						return nil, err
					}
					return "Profile updated successfully", nil
				},
			},
			"createUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"payload": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var input models.CreateUserInput
					if err := decodeInput(p.Args["payload"], &input); err != nil {
						return false, nil
					}
					if err := r.Users.CreateUser(p.Context, input); err != nil {
						// Duplicate accounts report false rather than
						// erroring, matching the client contract
						return false, nil
					}
					return true, nil
				},
			},
			"generateOTP": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"to": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					to, _ := p.Args["to"].(string)
					if err := r.Users.GenerateOTP(p.Context, to); err != nil {
						return nil, err
					}
					return "ok", nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
