// internal/adapters/mongo/document_store_test.go
package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

func TestBuildUpdate(t *testing.T) {
	tests := []struct {
		name  string
		set   ports.Document
		unset []string
		want  bson.M
	}{
		{
			name:  "set_and_unset",
			set:   ports.Document{"archived": false},
			unset: []string{"archivedAt"},
			want: bson.M{
				"$set":   bson.M{"archived": false},
				"$unset": bson.M{"archivedAt": ""},
			},
		},
		{
			name:  "unset_only_omits_empty_set",
			unset: []string{"reorderLevel"},
			want:  bson.M{"$unset": bson.M{"reorderLevel": ""}},
		},
		{
			name: "id_fields_are_never_written",
			set:  ports.Document{"id": "INV-001", "_id": "INV-001", "quantity": 4},
			want: bson.M{"$set": bson.M{"quantity": 4}},
		},
		{
			name: "nothing_to_do",
			set:  ports.Document{"id": "INV-001"},
			want: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildUpdate(tt.set, tt.unset))
		})
	}
}

func TestToDocument(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	doc := toDocument(bson.M{
		"_id":        "INV-007",
		"quantity":   int32(12),
		"sold":       int64(3),
		"archivedAt": primitive.NewDateTimeFromTime(at),
		"categories": bson.M{"Tools": primitive.A{"Hand Tools", "Power Tools"}},
	})

	assert.Equal(t, "INV-007", ports.DocumentID(doc))
	assert.NotContains(t, doc, "_id")
	assert.Equal(t, 12, doc["quantity"])
	assert.Equal(t, 3, doc["sold"])
	assert.Equal(t, at, doc["archivedAt"])
	assert.Equal(t, map[string]any{"Tools": []any{"Hand Tools", "Power Tools"}}, doc["categories"])
}
