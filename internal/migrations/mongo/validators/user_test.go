package validators

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// Registration is create-if-absent on email alone, so a user document
// written without a name must pass the collection validator.
func TestUserValidator_NameIsOptional(t *testing.T) {
	schema := UserValidator["$jsonSchema"].(bson.M)
	required := schema["required"].([]string)

	for _, field := range required {
		if field == "name" {
			t.Fatal("name must not be a required field; registration accepts nameless sign-ins")
		}
	}

	want := map[string]bool{"email": true, "role": true, "createdAt": true}
	if len(required) != len(want) {
		t.Fatalf("expected required fields email, role, createdAt; got %v", required)
	}
	for _, field := range required {
		if !want[field] {
			t.Errorf("unexpected required field %q", field)
		}
	}

	name := schema["properties"].(bson.M)["name"].(bson.M)
	if got := name["minLength"]; got != 1 {
		t.Errorf("expected name minLength 1 to match the request contract, got %v", got)
	}
}
