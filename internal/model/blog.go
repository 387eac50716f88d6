package model

import "time"

// Blog is a single post. ImageFile is the bare filename of the uploaded
// image inside the uploads directory, empty when the post has no image.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageFile string    `gorm:"size:255" json:"image_file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
