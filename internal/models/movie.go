package models

import (
	"encoding/json"
	"time"
)

// Movie is a lazily-populated cache row for the external catalog: it is
// created the first time a user likes or dislikes a title and never deleted
// or refreshed afterwards.
type Movie struct {
	ImdbID     string    `gorm:"column:imdb_id;type:varchar(20);primaryKey" json:"imdbID"`
	Title      string    `gorm:"type:varchar(255);not null" json:"Title"`
	Year       int       `json:"Year"`
	PosterURL  string    `gorm:"type:text" json:"Poster"`
	Genre      string    `gorm:"type:varchar(255)" json:"Genre"`
	Plot       string    `gorm:"type:text" json:"Plot"`
	ImdbRating string    `gorm:"type:varchar(10)" json:"imdbRating"`
	UpdatedAt  time.Time `json:"-"`
}

func (Movie) TableName() string { return "movies" }

// UserLike and UserDislike are the two edge tables between users and movies.
// The composite unique index is what makes the like/dislike upsert atomic.
// A movie may appear in both sets for the same user; nothing enforces mutual
// exclusion, matching the product behavior.
type UserLike struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_like" json:"user_id"`
	MovieImdbID string    `gorm:"column:movie_imdb_id;type:varchar(20);not null;uniqueIndex:idx_user_like" json:"movie_imdb_id"`
	CreatedAt   time.Time `json:"created_at"`

	Movie Movie `gorm:"foreignKey:MovieImdbID" json:"movie"`
}

type UserDislike struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_dislike" json:"user_id"`
	MovieImdbID string    `gorm:"column:movie_imdb_id;type:varchar(20);not null;uniqueIndex:idx_user_dislike" json:"movie_imdb_id"`
	CreatedAt   time.Time `json:"created_at"`

	Movie Movie `gorm:"foreignKey:MovieImdbID" json:"movie"`
}

type LikeRequest struct {
	ImdbID string `json:"imdbID" binding:"required"`
}

type CinebotRequest struct {
	Text string `json:"text" binding:"required"`
}

// GenreCount is one entry of the liked-genre histogram, serialized as a
// [genre, count] pair to match the frontend contract.
type GenreCount struct {
	Genre string
	Count int
}

func (g GenreCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{g.Genre, g.Count})
}
