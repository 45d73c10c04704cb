package models

import (
	"time"

	"github.com/mmcloughlin/geohash"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyType string

const (
	TypeFlat  PropertyType = "flat"
	TypeHouse PropertyType = "house"
	TypeVilla PropertyType = "villa"
	TypePG    PropertyType = "pg"
	TypeRoom  PropertyType = "room"
)

type Furnishing string

const (
	Unfurnished   Furnishing = "unfurnished"
	SemiFurnished Furnishing = "semi-furnished"
	FullFurnished Furnishing = "furnished"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityOccupied  Availability = "occupied"
	AvailabilityArchived  Availability = "archived"
)

// GeohashPrecision trims coordinates to roughly neighborhood resolution,
// enough to compare listings without leaking exact addresses.
const GeohashPrecision = 7

// GeoPoint carries the optional coordinates of a listing. Geohash is derived
// once at write time and kept alongside for indexing.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Geohash   string  `bson:"geohash" json:"geohash"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{
		Latitude:  lat,
		Longitude: lng,
		Geohash:   geohash.EncodeWithPrecision(lat, lng, GeohashPrecision),
	}
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Name         string             `bson:"name" json:"name"`
	Type         PropertyType       `bson:"type" json:"type"`
	BHK          string             `bson:"bhk" json:"bhk"`
	AreaSqFt     float64            `bson:"areaSqFt" json:"areaSqFt"`
	Furnishing   Furnishing         `bson:"furnishing" json:"furnishing"`
	MinAmount    float64            `bson:"minAmount" json:"minAmount"`
	MaxAmount    float64            `bson:"maxAmount" json:"maxAmount"`
	Features     []string           `bson:"features" json:"features"`
	Address      string             `bson:"address" json:"address"`
	City         string             `bson:"city" json:"city"`
	State        string             `bson:"state" json:"state"`
	Country      string             `bson:"country" json:"country"`
	Pincode      string             `bson:"pincode" json:"pincode"`
	Geo          *GeoPoint          `bson:"geo,omitempty" json:"geo,omitempty"`
	Rating       float64            `bson:"rating" json:"rating"`
	ReviewCount  int                `bson:"reviewCount" json:"reviewCount"`
	OwnerID      string             `bson:"ownerID" json:"ownerID"`
	Availability Availability       `bson:"availability" json:"availability"`
	IsArchived   bool               `bson:"isArchived" json:"isArchived"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MonthlyAmount is the single advertised rent figure used by filters and
// price similarity: the floor of the band, or the ceiling when no floor is
// listed.
func (p *Property) MonthlyAmount() float64 {
	if p.MinAmount > 0 {
		return p.MinAmount
	}
	return p.MaxAmount
}

// HasCoordinates reports whether the listing carries usable geo data.
func (p *Property) HasCoordinates() bool {
	return p.Geo != nil
}

// Clone returns a deep copy detached from the original's Geo and Features.
func (p *Property) Clone() *Property {
	out := *p
	if p.Geo != nil {
		geo := *p.Geo
		out.Geo = &geo
	}
	if p.Features != nil {
		out.Features = append([]string(nil), p.Features...)
	}
	return &out
}
