package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName      string               `json:"firstName" bson:"firstName"`
	LastName       string               `json:"lastName" bson:"lastName"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"`
	Headline       string               `json:"headline" bson:"headline"`
	Location       string               `json:"location" bson:"location"`
	Industry       string               `json:"industry" bson:"industry"`
	About          string               `json:"about" bson:"about"`
	ProfilePicture string               `json:"profilePicture" bson:"profilePicture"`
	CoverPhoto     string               `json:"coverPhoto" bson:"coverPhoto"`
	Experience     []Experience         `json:"experience" bson:"experience"`
	Education      []Education          `json:"education" bson:"education"`
	Skills         []string             `json:"skills" bson:"skills"`
	Connections    []primitive.ObjectID `json:"connections" bson:"connections"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the projection embedded in connection requests,
// connection lists and post authors.
type UserSummary struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	FirstName      string             `json:"firstName" bson:"firstName"`
	LastName       string             `json:"lastName" bson:"lastName"`
	Headline       string             `json:"headline,omitempty" bson:"headline"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture"`
	Location       string             `json:"location,omitempty" bson:"location"`
}

// Summary projects a full user document down to its public summary.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.Id,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Headline:       u.Headline,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
	}
}

// HasConnection reports whether other is already in the user's
// connections set.
func (u *User) HasConnection(other primitive.ObjectID) bool {
	for _, conn := range u.Connections {
		if conn == other {
			return true
		}
	}
	return false
}

type Experience struct {
	Title            string    `json:"title" bson:"title"`
	Company          string    `json:"company" bson:"company"`
	Location         string    `json:"location" bson:"location"`
	StartDate        time.Time `json:"startDate" bson:"startDate"`
	EndDate          time.Time `json:"endDate" bson:"endDate"`
	CurrentlyWorking bool      `json:"currentlyWorking" bson:"currentlyWorking"`
	Description      string    `json:"description" bson:"description"`
}

type Education struct {
	School      string    `json:"school" bson:"school"`
	Degree      string    `json:"degree" bson:"degree"`
	Field       string    `json:"field" bson:"field"`
	StartDate   time.Time `json:"startDate" bson:"startDate"`
	EndDate     time.Time `json:"endDate" bson:"endDate"`
	Description string    `json:"description" bson:"description"`
}
