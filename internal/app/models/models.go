// Package models holds the persistence entities of the blog: User, Group,
// Post, Comment and Follow. Structs mirror their tables column for column;
// relation fields carry no db tag and are filled by the repositories when a
// join is requested.
package models
