package models

import "time"

// Categories the gallery knows how to group and title. Anything else is
// treated as a user-defined custom category.
const (
	CategoryFamily  = "family"
	CategoryTravel  = "travel"
	CategoryNature  = "nature"
	CategoryFood    = "food"
	CategoryFriends = "friends"
	CategoryEvents  = "events"
	CategoryOther   = "other"
)

type Photo struct {
	ID           string    `bson:"_id" json:"id"`
	FileName     string    `bson:"file_name" json:"fileName"`
	OriginalName string    `bson:"original_name" json:"originalName"`
	UserID       string    `bson:"user_id" json:"userId"`
	Category     string    `bson:"category" json:"category"`
	Size         int64     `bson:"size" json:"size"`
	ContentType  string    `bson:"content_type" json:"type"`
	Width        int       `bson:"width" json:"width"`
	Height       int       `bson:"height" json:"height"`
	UploadedAt   time.Time `bson:"uploaded_at" json:"uploadDate"`
	BlobKey      string    `bson:"blob_key" json:"imageKey"`
	Thumbnail    string    `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Tags         []string  `bson:"tags" json:"tags"`
	Archived     bool      `bson:"archived" json:"-"`
	ArchivedAt   time.Time `bson:"archived_at,omitempty" json:"-"`
}
