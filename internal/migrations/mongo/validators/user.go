package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"role",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			// Registration accepts nameless sign-ins, so name is only
			// constrained when present.
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"user",
					"member",
					"admin",
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"approvedAt": bson.M{
				"bsonType": []string{"date", "null"},
			},
		},
	},
}
