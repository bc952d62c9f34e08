package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a catalog entry. Services are seeded out of band and only read over HTTP.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"`
	ServiceID   string             `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Facility    []Facility         `bson:"facility,omitempty" json:"facility,omitempty"`
}

// Facility is one line of a service's included-work list.
type Facility struct {
	Name    string `bson:"name" json:"name"`
	Details string `bson:"details" json:"details"`
}
