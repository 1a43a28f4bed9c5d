package services

// Services defined in this package:
// - AuthService: Handles signup, login, token refresh and password reset
// - PostService: Handles post pages (index, feed, profile, detail) and post writes
// - GroupService: Handles group listings and group pages
// - CommentService: Handles commenting on posts
// - FollowService: Handles author subscriptions
