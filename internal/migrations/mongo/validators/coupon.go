package validators

import "go.mongodb.org/mongo-driver/bson"

var CouponValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"coupon",
			"discount",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"coupon": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 40,
			},

			// Legacy documents store the discount as a string; both
			// shapes stay valid.
			"discount": bson.M{
				"bsonType": []string{"double", "int", "long", "string"},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 300,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
