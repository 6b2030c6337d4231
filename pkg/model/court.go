package model

type Court struct {
	ID              string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type            string   `json:"type" bson:"type" validate:"required,min=2,max=50"`
	PricePerSession float64  `json:"pricePerSession" bson:"pricePerSession" validate:"required,gt=0"`
	Image           string   `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
	SlotTimes       []string `json:"slotTimes,omitempty" bson:"slotTimes,omitempty" validate:"omitempty,dive,min=2,max=40"`
}
