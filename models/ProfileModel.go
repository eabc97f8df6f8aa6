package models

import (
	"time"
)

// SocialLink is one external link on a profile. Platform is restricted to
// the values in SocialPlatforms.
type SocialLink struct {
	Platform string `json:"platform" bson:"platform" validate:"required"`
	URL      string `json:"url" bson:"url" validate:"required,url"`
}

var SocialPlatforms = []string{
	"facebook", "twitter", "instagram", "linkedin", "youtube", "github", "website", "other",
}

func ValidSocialPlatform(platform string) bool {
	for _, p := range SocialPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

var RelationshipStatuses = []string{"Single", "Married", "Committed"}

func ValidRelationshipStatus(status string) bool {
	for _, s := range RelationshipStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Profile carries the presentation attributes and the two adjacency lists
// for a user. Following and Followers hold userids in follow order.
//
// Symmetry invariant: B appears in A.Following exactly when A appears in
// B.Followers. Only the follow service mutates these lists.
type Profile struct {
	UserID             string       `json:"userid" bson:"userid"`
	Username           string       `json:"username" bson:"username"`
	DisplayPicture     string       `json:"displayPicture,omitempty" bson:"displayPicture,omitempty"`
	Name               string       `json:"name,omitempty" bson:"name,omitempty"`
	Profession         string       `json:"profession,omitempty" bson:"profession,omitempty"`
	DateOfBirth        *time.Time   `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Status             string       `json:"status,omitempty" bson:"status,omitempty"`
	RelationshipStatus string       `json:"relationshipStatus,omitempty" bson:"relationshipStatus,omitempty"`
	SocialMediaLinks   []SocialLink `json:"socialMediaLinks" bson:"socialMediaLinks"`
	Following          []string     `json:"following" bson:"following"`
	Followers          []string     `json:"followers" bson:"followers"`
	IsProfileComplete  bool         `json:"isProfileComplete" bson:"isProfileComplete"`
	CreatedAt          time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// NewProfile builds a profile with empty (never nil) adjacency lists, so a
// freshly created or lazily synthesized profile is always safe to mutate.
func NewProfile(userID, username string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:             userID,
		Username:           username,
		RelationshipStatus: "Single",
		SocialMediaLinks:   []SocialLink{},
		Following:          []string{},
		Followers:          []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (p *Profile) IsFollowing(userID string) bool {
	for _, id := range p.Following {
		if id == userID {
			return true
		}
	}
	return false
}
