package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

type Subscriber struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Name           string             `json:"name" bson:"name"`
	Status         SubscriberStatus   `json:"status" bson:"status"`
	KlaviyoID      string             `json:"klaviyo_id" bson:"klaviyo_id"`
	Source         string             `json:"source" bson:"source"` // footer form, booking flow, price alert
	SubscribedAt   time.Time          `json:"subscribed_at" bson:"subscribed_at"`
	UnsubscribedAt *time.Time         `json:"unsubscribed_at" bson:"unsubscribed_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// PriceAlert fires when a newly listed or repriced property matches its
// criteria.
type PriceAlert struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	City         string             `json:"city" bson:"city"`
	ListingType  ListingType        `json:"listing_type" bson:"listing_type"`
	PropertyType PropertyType       `json:"property_type" bson:"property_type"`
	MaxPrice     float64            `json:"max_price" bson:"max_price" validate:"gt=0"`
	MinBedrooms  int                `json:"min_bedrooms" bson:"min_bedrooms"`
	Active       bool               `json:"active" bson:"active"`
	LastFiredAt  *time.Time         `json:"last_fired_at" bson:"last_fired_at"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Matches reports whether a property satisfies the alert criteria.
func (a *PriceAlert) Matches(p *Property) bool {
	if !a.Active || !p.IsPublished() {
		return false
	}
	if a.City != "" && a.City != p.City {
		return false
	}
	if a.ListingType != "" && a.ListingType != p.ListingType {
		return false
	}
	if a.PropertyType != "" && a.PropertyType != p.PropertyType {
		return false
	}
	if a.MinBedrooms > 0 && p.Bedrooms < a.MinBedrooms {
		return false
	}
	price := p.MonthlyPrice
	if a.ListingType == ListingTypeSale || (a.ListingType == "" && p.ListingType == ListingTypeSale) {
		price = p.SalePrice
	}
	return price > 0 && price <= a.MaxPrice
}

// UTMVisit records one tracked landing with its campaign parameters.
type UTMVisit struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Source    string             `json:"utm_source" bson:"utm_source"`
	Medium    string             `json:"utm_medium" bson:"utm_medium"`
	Campaign  string             `json:"utm_campaign" bson:"utm_campaign"`
	Term      string             `json:"utm_term" bson:"utm_term"`
	Content   string             `json:"utm_content" bson:"utm_content"`
	Path      string             `json:"path" bson:"path"`
	Referrer  string             `json:"referrer" bson:"referrer"`
	VisitorID string             `json:"visitor_id" bson:"visitor_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CampaignStats is the admin roll-up of UTM visits per campaign.
type CampaignStats struct {
	Source   string `json:"utm_source" bson:"_id.utm_source"`
	Medium   string `json:"utm_medium" bson:"_id.utm_medium"`
	Campaign string `json:"utm_campaign" bson:"_id.utm_campaign"`
	Visits   int64  `json:"visits" bson:"visits"`
}

type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusReplied  InquiryStatus = "replied"
	InquiryStatusArchived InquiryStatus = "archived"
)

// Inquiry is a contact or viewing request from the public site.
type Inquiry struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PropertyID *primitive.ObjectID `json:"property_id,omitempty" bson:"property_id,omitempty"`
	Name       string              `json:"name" bson:"name" validate:"required"`
	Email      string              `json:"email" bson:"email" validate:"required,email"`
	Phone      string              `json:"phone" bson:"phone"`
	Message    string              `json:"message" bson:"message" validate:"required"`
	Status     InquiryStatus       `json:"status" bson:"status"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// Invite is a token-gated admin signup. Tokens are single use and expire.
type Invite struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Token     string             `json:"token" bson:"token"`
	Role      UserRole           `json:"role" bson:"role"`
	InvitedBy primitive.ObjectID `json:"invited_by" bson:"invited_by"`
	UsedAt    *time.Time         `json:"used_at" bson:"used_at"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

func (i *Invite) IsUsable(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
